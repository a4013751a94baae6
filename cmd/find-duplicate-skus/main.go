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

	fmt.Println("🔍 Scanning all variants for duplicate SKUs...")

	result, err := scans.Scan(context.Background(), domain.KeyFieldSKU)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nScanned %d variants across %d products\n", result.TotalVariantsScanned, result.TotalParentsScanned)
	fmt.Printf("  Duplicate groups: %d (%d variants)\n", result.DuplicateGroupCount, result.DuplicateCount)
	fmt.Printf("  Missing SKU:      %d\n", result.MissingKeyCount)
	fmt.Printf("  Unique:           %d\n\n", result.UniqueCount)

	if result.DuplicateGroupCount == 0 {
		fmt.Println("✅ No duplicate SKUs found")
		return
	}

	for _, group := range result.Duplicates {
		fmt.Printf("SKU %q (%d variants):\n", group.Key, len(group.Records))
		for _, rec := range group.Records {
			id := rec.VariantID
			if n, err := shopify.ExtractIDFromGID(rec.VariantID); err == nil {
				id = fmt.Sprintf("%d", n)
			}
			fmt.Printf("  - %s / %s (qty %d, variant %s)\n", rec.ParentTitle, rec.VariantTitle, rec.InventoryQuantity, id)
		}
	}
}
