package mdsvc

import (
	"os"
	"testing"

	basesvc "pos_commerce/internal/api/base/service"
	"pos_commerce/internal/api/base/service/storetest"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(&logger.LogConfig{Level: "error", Format: "text", Output: "stdout", BufferSize: 64})
	code := m.Run()
	logger.Shutdown()
	os.Exit(code)
}

var (
	_ basesvc.TenantStore[mdmodels.ItemBook]         = (*storetest.MemStore[mdmodels.ItemBook])(nil)
	_ basesvc.TenantStore[mdmodels.CategoryDiscount] = (*storetest.MemStore[mdmodels.CategoryDiscount])(nil)
)

func mustQuery(t *testing.T, tenant string) basesvc.TenantQuery {
	return storetest.MustQuery(t, tenant)
}
