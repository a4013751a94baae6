package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/internal/service"
	"github.com/isuraem/shopify-best-sellers-app/internal/shopify"
)

// Scans for duplicate SKUs and reassigns every duplicate except the
// first-seen variant in each group. Dry run unless --apply is passed.
func main() {
	apply := flag.Bool("apply", false, "execute the reassignment (default is dry run)")
	flag.Parse()

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
	actions := service.NewActionService(cfg.Scan, client, logger)

	fmt.Println("🔍 Scanning for duplicate SKUs...")

	result, err := scans.Scan(context.Background(), domain.KeyFieldSKU)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}

	if result.DuplicateGroupCount == 0 {
		fmt.Println("✅ No duplicate SKUs found, nothing to do")
		return
	}

	// Keep the first-seen variant of each group; reassign the rest.
	var selection []domain.VariantRecord
	for _, group := range result.Duplicates {
		for _, rec := range group.Records[1:] {
			selection = append(selection, rec)
		}
	}

	fmt.Printf("Found %d duplicate groups; %d variants to reassign\n", result.DuplicateGroupCount, len(selection))
	for _, rec := range selection {
		fmt.Printf("  - %s / %s (SKU %q -> %s<id>)\n", rec.ParentTitle, rec.VariantTitle, rec.KeyField, cfg.Scan.ReassignPrefix)
	}

	if !*apply {
		fmt.Println("\nDry run. Re-run with --apply to execute.")
		return
	}

	fmt.Println("\n✏️  Reassigning...")
	outcome, err := actions.ExecuteBulkAction(context.Background(), domain.KeyFieldSKU, selection, domain.ActionReassignField)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reassignment failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Updated %d variants", outcome.Succeeded)
	if len(outcome.FailedBatches) > 0 {
		fmt.Printf("; %d product batches failed (first error: %s)", len(outcome.FailedBatches), outcome.Error)
	}
	fmt.Println()
}
