package main

import (
	"context"
	"time"

	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/database"
	"pos_commerce/internal/global"
	"pos_commerce/internal/logger"
)

// InitIndexes tạo collection còn thiếu và index theo tag của model.
// Unique index (tenant_id, khóa tự nhiên) là điều kiện để Create không ghi đè khi chạy đồng thời.
func InitIndexes() {
	log := logger.GetAppLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName_Master)
	if err := database.EnsureCollections(ctx, db, collectionNames()); err != nil {
		log.Fatalf("Failed to ensure collections: %v", err)
	}

	names := global.MongoDB_ColNames
	models := map[string]any{
		names.CategoryDiscounts: mdmodels.CategoryDiscount{},
		names.StoreDiscounts:    mdmodels.StoreDiscount{},
		names.ItemBooks:         mdmodels.ItemBook{},
		names.ItemCommons:       mdmodels.ItemCommon{},
		names.ItemStores:        mdmodels.ItemStore{},
	}
	for name, model := range models {
		col, err := global.RegistryCollections.Lookup(name)
		if err != nil {
			log.Fatalf("Collection %s chưa được đăng ký: %v", name, err)
		}
		if err := database.CreateIndexes(ctx, col, model); err != nil {
			log.Fatalf("Failed to create indexes for %s: %v", name, err)
		}
	}
	log.Info("Ensured collections and indexes")
}
