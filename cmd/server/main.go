package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	basehdl "pos_commerce/internal/api/base/handler"
	cartrouter "pos_commerce/internal/api/cart/router"
	cartsvc "pos_commerce/internal/api/cart/service"
	mdrouter "pos_commerce/internal/api/masterdata/router"
	"pos_commerce/internal/api/middleware"
	apirouter "pos_commerce/internal/api/router"
	"pos_commerce/internal/database"
	"pos_commerce/internal/global"
	"pos_commerce/internal/logger"
	"pos_commerce/internal/metrics"
)

// initLogger khởi tạo logger, cấu hình đọc từ biến môi trường
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

func main() {
	initLogger()
	defer logger.Shutdown()

	InitGlobal()
	InitRegistry()
	InitIndexes()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.GetAppLogger().WithError(err).Error("Server stopped with error")
	}
}

// run dựng app, đăng ký route và chạy server cho tới khi ctx bị hủy
func run(ctx context.Context) error {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(reg)
	itemBookMetrics := metrics.NewItemBookMetrics(reg)
	cartMetrics := metrics.NewCartMetrics(reg)

	app := InitFiberApp(cfg, reg, httpMetrics)
	auth := middleware.NewTenantAuth(cfg)
	r := apirouter.NewRouter(app, auth.AuthMiddleware())
	if err := apirouter.SetupRoutes(r,
		apirouter.SystemRoutes(basehdl.NewSystemHandler(global.MongoDB_Session, global.Redis_Client)),
		mdrouter.Register(itemBookMetrics),
		cartrouter.Register(cartsvc.NewCartDiscountServiceFromConfig(cfg, cartMetrics)),
	); err != nil {
		return fmt.Errorf("setup routes: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("address", ":"+cfg.Address).Info("Starting server with HTTP")
		if err := app.Listen(":"+cfg.Address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var errs []error
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
		}
		if err := database.CloseInstance(shutdownCtx, global.MongoDB_Session); err != nil {
			errs = append(errs, err)
		}
		if global.Redis_Client != nil {
			if err := global.Redis_Client.Close(); err != nil {
				errs = append(errs, fmt.Errorf("redis close: %w", err))
			}
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}
