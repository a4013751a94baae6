package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/service"
	"github.com/isuraem/shopify-best-sellers-app/internal/shopify"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: compare-inventory-csv <export.csv>")
		os.Exit(1)
	}
	path := os.Args[1]

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

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	client := shopify.NewClient(cfg.Shopify, logger)
	scans := service.NewScanService(cfg.Scan, client, nil, logger)

	fmt.Printf("🔍 Comparing %s against live store data...\n", path)

	result, err := scans.CompareCSV(context.Background(), file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Comparison failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%d rows checked\n", result.TotalRows)
	fmt.Printf("  Matched:              %d\n", result.MatchedCount)
	fmt.Printf("  Not found in store:   %d\n", result.NotFoundCount)
	fmt.Printf("  Secondary mismatch:   %d\n", result.MismatchCount)
	fmt.Printf("  Missing on one side:  %d\n\n", len(result.MissingOneSide))

	for _, row := range result.NotFound {
		fmt.Printf("  ❌ not in store: %q (line %d)\n", row.Key, row.Line)
	}
	for _, m := range result.Mismatched {
		fmt.Printf("  ⚠️  mismatch: %q file=%q store=%q\n", m.Row.Key, m.Row.Secondary, m.Records[0].AltID)
	}
}
