package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/checkout"
	"github.com/ariefcatur/go-storefront.git/internal/config"
	"github.com/ariefcatur/go-storefront.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-storefront.git/internal/kafka"
	"github.com/ariefcatur/go-storefront.git/internal/metrics"
	"github.com/ariefcatur/go-storefront.git/internal/postgres"
	"github.com/ariefcatur/go-storefront.git/internal/redisx"
	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresConn)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers: satu per topic
	prodCreated := kafkax.NewProducer(cfg.KafkaBrokers, store.TopicOrderCreated, 1024)
	prodCreated.Start(ctx)
	prodPayment := kafkax.NewProducer(cfg.KafkaBrokers, store.TopicOrderPayment, 1024)
	prodPayment.Start(ctx)

	// Repos
	products := &store.ProductRepo{DB: db}
	collections := &store.CollectionRepo{DB: db}
	carts := &store.CartRepo{DB: db}
	customers := &store.CustomerRepo{DB: db}
	orders := &store.OrderRepo{DB: db}
	reviews := &store.ReviewRepo{DB: db}
	tags := &store.TagRepo{DB: db}

	co := &checkout.Service{
		Carts:    carts,
		Orders:   orders,
		Producer: prodCreated,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}

	// Router & handlers
	m := metrics.NewServerMetrics("api")
	router := httpx.NewRouter(m)
	(&httpx.ProductsHandler{Products: products}).Register(router)
	(&httpx.CollectionsHandler{Collections: collections}).Register(router)
	(&httpx.CartsHandler{Carts: carts}).Register(router)
	(&httpx.CustomersHandler{Customers: customers}).Register(router)
	(&httpx.ReviewsHandler{Reviews: reviews}).Register(router)
	(&httpx.TagsHandler{Tags: tags}).Register(router)
	(&httpx.OrdersHandler{
		Checkout: co,
		Orders:   orders,
		Producer: prodPayment,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prodCreated.Close() // tutup inbox -> flush & close writer
	prodPayment.Close()
	prodCreated.WaitClosed()
	prodPayment.WaitClosed()
}
