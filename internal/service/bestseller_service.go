package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
	"github.com/isuraem/shopify-best-sellers-app/internal/shopify"
)

// BestsellerService ranks products by units sold over a lookback window,
// aggregating order line items across the whole paged orders connection.
type BestsellerService struct {
	client  *shopify.Client
	logger  *zap.Logger
	cfg     config.ScanConfig
	limiter *rate.Limiter
}

// NewBestsellerService creates a new best-seller service
func NewBestsellerService(cfg config.ScanConfig, client *shopify.Client, logger *zap.Logger) *BestsellerService {
	var limiter *rate.Limiter
	if cfg.PagesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.PagesPerSecond), 1)
	}
	return &BestsellerService{
		client:  client,
		logger:  logger,
		cfg:     cfg,
		limiter: limiter,
	}
}

type rankEntry struct {
	productID string
	title     string
	units     int
	revenue   decimal.Decimal
}

// Rank pages every order created in the last `months` months and returns
// products sorted by units sold, revenue breaking ties, first-seen order
// beyond that. top limits the result length; zero means all.
func (s *BestsellerService) Rank(ctx context.Context, months, top int) ([]domain.ProductRank, error) {
	if months < 1 {
		months = 3
	}
	since := time.Now().AddDate(0, -months, 0).Format("2006-01-02")
	query := fmt.Sprintf("created_at:>=%s", since)

	index := make(map[string]int)
	var entries []*rankEntry

	cursor := ""
	pages := 0
	orders := 0
	for {
		pages++
		variables := map[string]interface{}{
			"first": s.cfg.PageSize,
			"query": query,
		}
		if cursor != "" {
			variables["after"] = cursor
		}

		resp, err := s.client.Execute(ctx, shopify.OrdersWithLineItemsQuery, variables)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch orders page %d: %w", pages, err)
		}

		var result struct {
			Orders struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Edges []struct {
					Node struct {
						ID        string `json:"id"`
						LineItems struct {
							Edges []struct {
								Node struct {
									Quantity int `json:"quantity"`
									Product  *struct {
										ID    string `json:"id"`
										Title string `json:"title"`
									} `json:"product"`
									OriginalUnitPriceSet struct {
										ShopMoney struct {
											Amount string `json:"amount"`
										} `json:"shopMoney"`
									} `json:"originalUnitPriceSet"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"lineItems"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"orders"`
		}

		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse orders response: %w", err)
		}

		for _, edge := range result.Orders.Edges {
			orders++
			for _, li := range edge.Node.LineItems.Edges {
				item := li.Node
				// Deleted products leave line items with no product node.
				if item.Product == nil || item.Product.ID == "" {
					continue
				}

				idx, seen := index[item.Product.ID]
				if !seen {
					idx = len(entries)
					index[item.Product.ID] = idx
					entries = append(entries, &rankEntry{
						productID: item.Product.ID,
						title:     item.Product.Title,
					})
				}

				entry := entries[idx]
				entry.units += item.Quantity

				unitPrice, err := decimal.NewFromString(item.OriginalUnitPriceSet.ShopMoney.Amount)
				if err != nil {
					s.logger.Debug("Skipping unparseable line item price",
						zap.String("product_id", item.Product.ID),
						zap.String("amount", item.OriginalUnitPriceSet.ShopMoney.Amount),
					)
					continue
				}
				entry.revenue = entry.revenue.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
		}

		if !result.Orders.PageInfo.HasNextPage || result.Orders.PageInfo.EndCursor == "" {
			break
		}
		cursor = result.Orders.PageInfo.EndCursor

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("wait for rate limiter: %w", err)
			}
		}
	}

	// Stable: equal units and revenue keep first-seen order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].units != entries[j].units {
			return entries[i].units > entries[j].units
		}
		return entries[i].revenue.GreaterThan(entries[j].revenue)
	})

	if top > 0 && top < len(entries) {
		entries = entries[:top]
	}

	ranks := make([]domain.ProductRank, len(entries))
	for i, e := range entries {
		ranks[i] = domain.ProductRank{
			ProductID: e.productID,
			Title:     e.title,
			UnitsSold: e.units,
			Revenue:   e.revenue.StringFixed(2),
		}
	}

	s.logger.Info("Best-seller ranking complete",
		zap.Int("months", months),
		zap.Int("pages", pages),
		zap.Int("orders", orders),
		zap.Int("products", len(ranks)),
	)

	return ranks, nil
}
