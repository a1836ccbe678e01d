// File: cmd/server/providers.go
package main

import (
	"log"

	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/firebase"
	"studybuddy_backend/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db, logger)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
	return db, cleanup, nil
}

func provideFirebase(cfg *config.Config, logger *zap.Logger) (*firebase.FirebaseService, func(), error) {
	fb, err := firebase.NewFirebaseService(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return fb, fb.Close, nil
}
