package shopify

// ProductVariantsQuery pages through products with their variants, carrying
// both identifiers (SKU and barcode) plus the display fields.
const ProductVariantsQuery = `
query getProductVariants($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        status
        featuredImage {
          url
        }
        variants(first: 250) {
          edges {
            node {
              id
              title
              sku
              barcode
              price
              inventoryQuantity
            }
          }
        }
      }
    }
  }
}
`

// OrdersWithLineItemsQuery pages through orders for best-seller ranking.
// The query string filters by creation date (e.g. "created_at:>=2025-01-01").
const OrdersWithLineItemsQuery = `
query getOrders($first: Int!, $after: String, $query: String) {
  orders(first: $first, after: $after, query: $query) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        name
        createdAt
        lineItems(first: 100) {
          edges {
            node {
              quantity
              product {
                id
                title
              }
              originalUnitPriceSet {
                shopMoney {
                  amount
                }
              }
            }
          }
        }
      }
    }
  }
}
`
