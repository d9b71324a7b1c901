package main

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"pos_commerce/internal/global"
	"pos_commerce/internal/logger"
)

// collectionNames trả về tên mọi collection master-data
func collectionNames() []string {
	n := global.MongoDB_ColNames
	return []string{n.CategoryDiscounts, n.StoreDiscounts, n.ItemBooks, n.ItemCommons, n.ItemStores}
}

// InitRegistry đăng ký các collection vào global.RegistryCollections
func InitRegistry() {
	if err := InitCollections(global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName_Master)); err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize collections: %v", err)
	}
	logger.GetAppLogger().WithField("collections", global.RegistryCollections.Names()).Info("Initialized collection registry")
}

// InitCollections đăng ký collection của db theo tên
func InitCollections(db *mongo.Database) error {
	log := logger.GetAppLogger()
	for _, name := range collectionNames() {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			return fmt.Errorf("register collection %s: %w", name, err)
		}
		if registered {
			log.Debugf("Collection %s registered successfully", name)
		} else {
			log.Warnf("Collection %s already registered", name)
		}
	}
	return nil
}
