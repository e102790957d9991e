package main

import (
	"context"
	"errors"
	"github.com/ariefcatur/nexus-admin/internal/catalog"
	"github.com/ariefcatur/nexus-admin/internal/config"
	"github.com/ariefcatur/nexus-admin/internal/httpx"
	kafkax "github.com/ariefcatur/nexus-admin/internal/kafka"
	"github.com/ariefcatur/nexus-admin/internal/postgres"
	"github.com/ariefcatur/nexus-admin/internal/redisx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel, os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, postgres.Options{MaxConns: int32(cfg.PostgresMaxConns)}, log)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("db migrate", "err", err)
		os.Exit(1)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	if err := redisx.Ready(ctx, rdb); err != nil {
		// creates still work, just without idempotency keys
		log.Warn("redis not ready", "err", err)
	}
	idem := &redisx.Idempotency{RDB: rdb}

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, catalog.TopicChanges, 1024, log)
	prod.Start(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := httpx.NewMetrics(reg)
	router := httpx.NewRouter(reg)

	products := &catalog.ProductRepo{DB: db}
	stores := &catalog.StoreRepo{DB: db}
	orders := &catalog.OrderRepo{DB: db}

	(&httpx.ResourceHandler[catalog.Product, catalog.ProductFields]{
		Resource: catalog.ResourceProducts, Reader: products, Writer: products,
		Idem: idem, Events: prod, Metrics: metrics, Service: cfg.ServiceName, Log: log,
	}).Register(router)
	(&httpx.ResourceHandler[catalog.Store, catalog.StoreFields]{
		Resource: catalog.ResourceStores, Reader: stores, Writer: stores,
		Idem: idem, Events: prod, Metrics: metrics, Service: cfg.ServiceName, Log: log,
	}).Register(router)
	(&httpx.ResourceHandler[catalog.Order, catalog.OrderFields]{
		Resource: catalog.ResourceOrders, Reader: orders, Writer: orders,
		Idem: idem, Events: prod, Metrics: metrics, Service: cfg.ServiceName, Log: log,
	}).Register(router)
	(&httpx.ResourceHandler[catalog.User, catalog.UserFields]{
		Resource: catalog.ResourceUsers, Reader: &catalog.UserRepo{DB: db}, Log: log,
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush queued events
	prod.WaitClosed()
}
