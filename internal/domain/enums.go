package domain

// KeyField selects which variant attribute a scan reconciles.
type KeyField string

const (
	KeyFieldSKU     KeyField = "sku"
	KeyFieldBarcode KeyField = "barcode"
)

// IsValid checks if the key field is one we can scan.
func (k KeyField) IsValid() bool {
	switch k {
	case KeyFieldSKU, KeyFieldBarcode:
		return true
	default:
		return false
	}
}

// BulkAction is the operation applied to a selection of variants.
type BulkAction string

const (
	// ActionClearField empties the key field on each selected variant.
	ActionClearField BulkAction = "CLEAR_FIELD"
	// ActionReassignField sets the key field to a value derived from the
	// variant's own ID, so re-running it is a no-op.
	ActionReassignField BulkAction = "REASSIGN_FIELD"
	// ActionDeleteVariant removes the selected variants entirely.
	ActionDeleteVariant BulkAction = "DELETE_VARIANT"
)

// IsValid checks if the bulk action is supported.
func (a BulkAction) IsValid() bool {
	switch a {
	case ActionClearField, ActionReassignField, ActionDeleteVariant:
		return true
	default:
		return false
	}
}

// OperationState tracks one operator-initiated bulk operation.
type OperationState string

const (
	StateIdle       OperationState = "IDLE"
	StateConfirming OperationState = "CONFIRMING"
	StateExecuting  OperationState = "EXECUTING"
)
