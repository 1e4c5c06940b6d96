package main

import (
	"fmt"
	"os"

	"github.com/shieldline/warranty-service/internal/auth"
	"github.com/shieldline/warranty-service/internal/config"
	"github.com/shieldline/warranty-service/internal/db"
	"github.com/shieldline/warranty-service/internal/excel"
	httphandler "github.com/shieldline/warranty-service/internal/http"
	"github.com/shieldline/warranty-service/internal/http/middleware"
	"github.com/shieldline/warranty-service/internal/logger"
	"github.com/shieldline/warranty-service/internal/pdf"
	"github.com/shieldline/warranty-service/internal/repository"
	"github.com/shieldline/warranty-service/internal/service"
	"github.com/shieldline/warranty-service/internal/store"
	"github.com/shieldline/warranty-service/internal/store/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	var stores store.Stores
	switch cfg.Store.Mode {
	case config.StoreModePostgres:
		database, err := db.New(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect database")
		}
		stores = repository.NewStores(database)
	default:
		stores = memory.NewStores(memory.NewMapKV())
	}
	log.Info().Str("mode", cfg.Store.Mode).Msg("store backend ready")

	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	contractService := service.NewContractService(stores, pdfGenerator)
	batchService := service.NewBatchService(stores, excelGenerator, cfg.Billing.RemittanceTaxRatePct, log)
	productService := service.NewProductService(stores)
	dealershipService := service.NewDealershipService(stores)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, batchService, productService, dealershipService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting warranty service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
