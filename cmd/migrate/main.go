package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/adb-reso/adb-reso-go/internal/config"
	"github.com/adb-reso/adb-reso-go/internal/repository"
)

func main() {
	// 加载配置
	configPath := "./configs/config.yaml"
	if len(os.Args) > 1 && os.Args[1] == "--config" && len(os.Args) > 2 {
		configPath = os.Args[2]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := config.InitLogger(&cfg.Log)
	ctx := context.Background()

	// InitDB 会迁移 settings 表
	db, err := repository.InitDB(ctx, &cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	// 首次迁移时写入开关的默认值
	repo := repository.NewSettingRepository(db, cfg.Storage.SettingsKey)
	if _, ok, err := repo.Get(ctx, cfg.Storage.SettingsKey); err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	} else if !ok {
		if err := repo.SetAutoApply(ctx, false); err != nil {
			log.Fatalf("Failed to seed settings: %v", err)
		}
		fmt.Printf("✓ Seeded %s=off\n", cfg.Storage.SettingsKey)
	}

	fmt.Println("✓ Migration completed successfully")
}
