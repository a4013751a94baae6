package shopify

// ProductVariantsBulkUpdateMutation updates variants of one product in a
// single call. SKU lives on the inventory item; barcode on the variant.
const ProductVariantsBulkUpdateMutation = `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    productVariants {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductVariantsBulkDeleteMutation deletes variants of one product.
const ProductVariantsBulkDeleteMutation = `
mutation productVariantsBulkDelete($productId: ID!, $variantsIds: [ID!]!) {
  productVariantsBulkDelete(productId: $productId, variantsIds: $variantsIds) {
    product {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// TagsAddMutation adds tags to a single resource (e.g. a Product).
const TagsAddMutation = `
mutation tagsAdd($id: ID!, $tags: [String!]!) {
  tagsAdd(id: $id, tags: $tags) {
    node {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// CollectionAddProductsMutation adds products to a custom collection.
const CollectionAddProductsMutation = `
mutation collectionAddProducts($id: ID!, $productIds: [ID!]!) {
  collectionAddProducts(id: $id, productIds: $productIds) {
    collection {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductVariantsBulkInput is one variant entry for productVariantsBulkUpdate.
type ProductVariantsBulkInput struct {
	ID            string              `json:"id"`
	Barcode       *string             `json:"barcode,omitempty"`
	InventoryItem *InventoryItemInput `json:"inventoryItem,omitempty"`
}

// InventoryItemInput carries the SKU for productVariantsBulkUpdate.
type InventoryItemInput struct {
	SKU *string `json:"sku,omitempty"`
}
