package shopify

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractIDFromGID parses the numeric suffix of a Shopify GID
// (e.g. "gid://shopify/ProductVariant/43122345" -> 43122345).
func ExtractIDFromGID(gid string) (int64, error) {
	parts := strings.Split(gid, "/")
	if len(parts) < 4 {
		return 0, fmt.Errorf("invalid GID format: %s", gid)
	}

	id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ID from GID: %w", err)
	}

	return id, nil
}

// ProductGID builds a Product GID from a numeric ID.
func ProductGID(id int64) string {
	return fmt.Sprintf("gid://shopify/Product/%d", id)
}

// CollectionGID builds a Collection GID from a numeric ID.
func CollectionGID(id int64) string {
	return fmt.Sprintf("gid://shopify/Collection/%d", id)
}
