package domain

import (
	"time"

	"github.com/google/uuid"
)

// VariantRecord is one unit of inventory under reconciliation. Records are
// rebuilt from Shopify on every scan and live only for the duration of a run.
type VariantRecord struct {
	VariantID      string `json:"variant_id"`
	ParentID       string `json:"parent_id"`
	ParentTitle    string `json:"parent_title"`
	ParentImageURL string `json:"parent_image_url,omitempty"`
	VariantTitle   string `json:"variant_title"`
	// KeyField is the value being audited (SKU or barcode depending on the scan).
	KeyField string `json:"key_field"`
	// AltID is the other identifier (barcode when SKU is the key, or vice versa).
	// Display only, except in CSV comparison where it is the secondary field.
	AltID             string `json:"alt_id,omitempty"`
	InventoryQuantity int    `json:"inventory_quantity"`
	Price             string `json:"price,omitempty"`
	Status            string `json:"status,omitempty"`
}

// KeyGroup is the set of VariantRecords sharing one non-empty trimmed key value.
type KeyGroup struct {
	Key     string          `json:"key"`
	Records []VariantRecord `json:"records"`
}

// ClassificationResult partitions every scanned record into exactly one bucket.
type ClassificationResult struct {
	KeyField             KeyField        `json:"key_field"`
	Duplicates           []KeyGroup      `json:"duplicates"`
	MissingKey           []VariantRecord `json:"missing_key"`
	UniqueWithKey        []VariantRecord `json:"unique_with_key"`
	TotalParentsScanned  int             `json:"total_parents_scanned"`
	TotalVariantsScanned int             `json:"total_variants_scanned"`
	DuplicateGroupCount  int             `json:"duplicate_group_count"`
	DuplicateCount       int             `json:"duplicate_count"`
	MissingKeyCount      int             `json:"missing_key_count"`
	UniqueCount          int             `json:"unique_count"`
}

// ReferenceRow is one row from an uploaded inventory export, cross-checked
// against store variants by key field.
type ReferenceRow struct {
	Key       string `json:"key"`
	Secondary string `json:"secondary,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// ReferenceMatch pairs a reference row with the store variants sharing its key.
type ReferenceMatch struct {
	Row     ReferenceRow    `json:"row"`
	Records []VariantRecord `json:"records"`
}

// ReferenceComparison is the result of checking reference rows against a scan.
type ReferenceComparison struct {
	NotFound       []ReferenceRow   `json:"not_found"`
	Mismatched     []ReferenceMatch `json:"mismatched"`
	MissingOneSide []ReferenceMatch `json:"missing_one_side"`
	Matched        []ReferenceMatch `json:"matched"`
	TotalRows      int              `json:"total_rows"`
	NotFoundCount  int              `json:"not_found_count"`
	MismatchCount  int              `json:"mismatch_count"`
	MissingCount   int              `json:"missing_one_side_count"`
	MatchedCount   int              `json:"matched_count"`
}

// BatchFailure reports one parent whose mutation batch failed.
type BatchFailure struct {
	ParentID string `json:"parent_id"`
	Error    string `json:"error"`
}

// ActionResult aggregates a bulk action across all parent batches.
type ActionResult struct {
	Succeeded     int            `json:"succeeded"`
	FailedBatches []BatchFailure `json:"failed_batches"`
	// Error carries the first batch error message, if any.
	Error string `json:"error,omitempty"`
}

// ScanRun is the persisted summary of one reconciliation run. Only counters
// are stored; the variant records themselves are never persisted.
type ScanRun struct {
	ID              uuid.UUID
	KeyField        KeyField
	ParentsScanned  int
	VariantsScanned int
	DuplicateGroups int
	Duplicates      int
	MissingKey      int
	Unique          int
	DurationMS      int64
	CreatedAt       time.Time
}

// ProductRank is one entry in the best-seller ranking.
type ProductRank struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	UnitsSold int    `json:"units_sold"`
	Revenue   string `json:"revenue"`
}
