package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/service"
	"github.com/isuraem/shopify-best-sellers-app/internal/shopify"
)

func main() {
	months := flag.Int("months", 3, "lookback window in months")
	top := flag.Int("top", 20, "number of products to show (0 = all)")
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
	bestsellers := service.NewBestsellerService(cfg.Scan, client, logger)

	fmt.Printf("🔍 Ranking best sellers over the last %d months...\n", *months)

	ranks, err := bestsellers.Rank(context.Background(), *months, *top)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ranking failed: %v\n", err)
		os.Exit(1)
	}

	if len(ranks) == 0 {
		fmt.Println("No orders in the window")
		return
	}

	fmt.Printf("\n%-4s %-50s %8s %12s\n", "#", "Product", "Units", "Revenue")
	for i, r := range ranks {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Printf("%-4d %-50s %8d %12s\n", i+1, title, r.UnitsSold, r.Revenue)
	}
}
