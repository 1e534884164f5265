package main

import (
	"context"
	"os"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/config"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/auth"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/cli"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/reports"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/internal/store/jsonfile"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/models"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize flat-file storage
	dataStore, err := jsonfile.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Authentication service with default admin bootstrap
	authService, err := auth.NewService(ctx, dataStore.User(), cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize authentication: %v", err)
	}
	if err := authService.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatalf("Failed to ensure default administrator: %v", err)
	}

	// Model layer
	userModel := models.NewUserModel(dataStore.User())
	travellerModel := models.NewTravellerModel(dataStore.Traveller())
	tripModel := models.NewTripModel(dataStore.Trip(), dataStore.Traveller())
	invoiceModel := models.NewInvoiceModel(dataStore.Invoice(), dataStore.Trip())
	reportGenerator := reports.NewGenerator(cfg.Reports.OutputDir)

	shell := cli.NewShell(os.Stdin, os.Stdout, cli.Deps{
		Auth:       authService,
		Users:      userModel,
		Travellers: travellerModel,
		Trips:      tripModel,
		Invoices:   invoiceModel,
		Reports:    reportGenerator,
	})

	log.Infow("Starting console shell", "environment", cfg.Environment)
	shell.Run(ctx)
	log.Info("Shutdown complete")
}
