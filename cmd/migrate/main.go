package main

import (
	"fmt"
	"os"

	"github.com/nexlearn/nexlearn-backend/internal/data/db"
	"github.com/nexlearn/nexlearn-backend/internal/platform/envutil"
	"github.com/nexlearn/nexlearn-backend/internal/platform/logger"
)

func main() {
	logg, err := logger.New(envutil.String("APP_ENV", "dev"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	pg, err := db.NewPostgresService(logg)
	if err != nil {
		logg.Fatal("connect postgres", "error", err)
	}

	if err := db.AutoMigrateAll(pg.DB()); err != nil {
		logg.Fatal("auto-migrate", "error", err)
	}

	logg.Info("schema migrated")
}
