package main

import (
	"context"
	"log"

	"github.com/Fusion-Mind-co/worklog-system/internal/bootstrap"
	"github.com/Fusion-Mind-co/worklog-system/internal/config"
	"github.com/Fusion-Mind-co/worklog-system/internal/server"
	"github.com/Fusion-Mind-co/worklog-system/internal/tracer"
	"github.com/Fusion-Mind-co/worklog-system/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	if err := container.AuditConsumer.Consume(context.Background()); err != nil {
		log.Printf("Audit consumer error: %v", err)
	}

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
