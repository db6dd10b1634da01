package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"pizzeria-system/internal/config"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/services/catalog"
	"pizzeria-system/internal/services/menu"
	"pizzeria-system/internal/services/order"
	"pizzeria-system/internal/storage"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		dataDir    = flag.String("data-dir", "", "Data directory for the JSON collections (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dataDir != "" {
		cfg.Storage.Dir = *dataDir
	}

	log := logger.New("pizzeria-system")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting pizzeria system", requestID, map[string]interface{}{
		"port":     cfg.Server.Port,
		"data_dir": cfg.Storage.Dir,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, requestID); err != nil {
		log.Error("service_failed", "Pizzeria system failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, requestID string) error {
	pizzaStore, err := storage.NewCollection[models.Pizza](cfg.Storage.Dir, "pizzas.json")
	if err != nil {
		return fmt.Errorf("failed to initialize pizza storage: %w", err)
	}
	drinkStore, err := storage.NewCollection[models.Drink](cfg.Storage.Dir, "drinks.json")
	if err != nil {
		return fmt.Errorf("failed to initialize drink storage: %w", err)
	}
	dessertStore, err := storage.NewCollection[models.Dessert](cfg.Storage.Dir, "desserts.json")
	if err != nil {
		return fmt.Errorf("failed to initialize dessert storage: %w", err)
	}
	orderStore, err := storage.NewCollection[models.Order](cfg.Storage.Dir, "orders.json")
	if err != nil {
		return fmt.Errorf("failed to initialize order storage: %w", err)
	}

	// Seed the catalogs on first boot; existing files are left alone.
	if err := seedCatalogs(pizzaStore, drinkStore, dessertStore, orderStore); err != nil {
		return fmt.Errorf("failed to seed catalogs: %w", err)
	}
	log.Info("storage_ready", "Flat-file storage initialized", requestID, map[string]interface{}{
		"dir": cfg.Storage.Dir,
	})

	pizzas := catalog.NewService[models.Pizza](pizzaStore, "pizza")
	drinks := catalog.NewService[models.Drink](drinkStore, "drink")
	desserts := catalog.NewService[models.Dessert](dessertStore, "dessert")

	orderService := order.NewService(orderStore, pizzas, drinks, desserts, menu.Price, log)

	mux := http.NewServeMux()
	catalog.NewHandler(pizzas, log).Register(mux, "/pizzas")
	catalog.NewHandler(drinks, log).Register(mux, "/drinks")
	catalog.NewHandler(desserts, log).Register(mux, "/desserts")
	order.NewHandler(orderService, log).Register(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: log.HTTPMiddleware(mux),
	}

	go func() {
		log.Info("server_started", fmt.Sprintf("HTTP server listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

func seedCatalogs(
	pizzaStore *storage.Collection[models.Pizza],
	drinkStore *storage.Collection[models.Drink],
	dessertStore *storage.Collection[models.Dessert],
	orderStore *storage.Collection[models.Order],
) error {
	price := decimal.RequireFromString

	if err := pizzaStore.Init([]models.Pizza{
		{CatalogItem: models.CatalogItem{ID: 1, Name: "Margherita", Price: price("8.5"), Available: true}, Ingredients: []string{"Tomato", "Mozzarella", "Basil"}},
		{CatalogItem: models.CatalogItem{ID: 2, Name: "Pepperoni", Price: price("10.5"), Available: true}, Ingredients: []string{"Tomato", "Mozzarella", "Pepperoni"}},
		{CatalogItem: models.CatalogItem{ID: 3, Name: "Quattro Formaggi", Price: price("11.5"), Available: true}, Ingredients: []string{"Mozzarella", "Gorgonzola", "Parmesan", "Goat cheese"}},
		{CatalogItem: models.CatalogItem{ID: 4, Name: "Hawaiian", Price: price("9.5"), Available: true}, Ingredients: []string{"Tomato", "Mozzarella", "Ham", "Pineapple"}},
	}); err != nil {
		return err
	}

	if err := drinkStore.Init([]models.Drink{
		{CatalogItem: models.CatalogItem{ID: 1, Name: "Coca-Cola", Price: price("3.5"), Available: true}, Size: "33cl"},
		{CatalogItem: models.CatalogItem{ID: 2, Name: "Beer", Price: price("4.5"), Available: true}, Size: "33cl", WithAlcohol: true},
		{CatalogItem: models.CatalogItem{ID: 3, Name: "Mineral water", Price: price("2.5"), Available: true}, Size: "50cl"},
	}); err != nil {
		return err
	}

	if err := dessertStore.Init([]models.Dessert{
		{CatalogItem: models.CatalogItem{ID: 1, Name: "Tiramisu", Price: price("5.5"), Available: true}},
		{CatalogItem: models.CatalogItem{ID: 2, Name: "Chocolate fondant", Price: price("6"), Available: true}},
		{CatalogItem: models.CatalogItem{ID: 3, Name: "Frangipane", Price: price("4.5"), Available: true}},
	}); err != nil {
		return err
	}

	return orderStore.Init([]models.Order{})
}
