package main

import (
	"context"
	"github.com/ariefcatur/nexus-admin/internal/audit"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/ariefcatur/nexus-admin/internal/config"
	kafkax "github.com/ariefcatur/nexus-admin/internal/kafka"
	"github.com/ariefcatur/nexus-admin/internal/redisx"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	if err := redisx.Ready(ctx, rdb); err != nil {
		log.Error("redis", "err", err)
		os.Exit(1)
	}

	svc := &audit.Service{Redis: rdb, Log: log, ServiceName: "audit"}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AuditGroup, catalog.TopicChanges, cfg.AuditWorkers, log)

	log.Info("audit consumer started", "group", cfg.AuditGroup, "topic", catalog.TopicChanges, "workers", cfg.AuditWorkers)
	if err := cons.Start(ctx, svc.HandleChange); err != nil {
		log.Error("consumer exit", "err", err)
		os.Exit(1)
	}
	log.Info("audit consumer stopped")
}
