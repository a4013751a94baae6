package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/internal/service"
	"github.com/isuraem/shopify-best-sellers-app/internal/shopify"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	scans := service.NewScanService(cfg.Scan, client, nil, logger)

	fmt.Println("🔍 Scanning all variants for missing barcodes...")

	result, err := scans.Scan(context.Background(), domain.KeyFieldBarcode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nScanned %d variants across %d products\n", result.TotalVariantsScanned, result.TotalParentsScanned)
	fmt.Printf("  Missing barcode:  %d\n", result.MissingKeyCount)
	fmt.Printf("  Duplicate groups: %d (%d variants)\n\n", result.DuplicateGroupCount, result.DuplicateCount)

	if result.MissingKeyCount == 0 {
		fmt.Println("✅ Every variant has a barcode")
		return
	}

	for _, rec := range result.MissingKey {
		fmt.Printf("  - %s / %s (SKU %q, qty %d)\n", rec.ParentTitle, rec.VariantTitle, rec.AltID, rec.InventoryQuantity)
	}
}
