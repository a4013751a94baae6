package planner

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/isuraem/shopify-best-sellers-app/internal/domain"
)

// Operation holds one operator-initiated bulk operation through its
// Idle -> Confirming -> Executing -> Idle lifecycle. On failure the selection
// is kept so the operator can retry without re-selecting.
type Operation struct {
	mu sync.Mutex

	Token     uuid.UUID
	state     domain.OperationState
	KeyField  domain.KeyField
	Selection []domain.VariantRecord
	Action    domain.BulkAction
	Result    *domain.ActionResult
	Err       string
	CreatedAt time.Time
}

// NewOperation stages a selection for confirmation. The key field is fixed at
// stage time so the confirm call cannot execute against a different field
// than the one the selection was built from.
func NewOperation(keyField domain.KeyField, selection []domain.VariantRecord, action domain.BulkAction) *Operation {
	return &Operation{
		Token:     uuid.New(),
		state:     domain.StateConfirming,
		KeyField:  keyField,
		Selection: selection,
		Action:    action,
		CreatedAt: time.Now(),
	}
}

// State returns the current lifecycle state.
func (o *Operation) State() domain.OperationState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// BeginExecute moves Confirming -> Executing. It fails if the operation is
// already executing or was never confirmed.
func (o *Operation) BeginExecute() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != domain.StateConfirming {
		return fmt.Errorf("operation is %s, expected %s", o.state, domain.StateConfirming)
	}
	o.state = domain.StateExecuting
	return nil
}

// Finish records the outcome and returns to Idle. On failure the selection is
// preserved and the operation goes back to Confirming for retry.
func (o *Operation) Finish(result *domain.ActionResult, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Result = result
	if err != nil {
		o.Err = err.Error()
		o.state = domain.StateConfirming
		return
	}
	o.Err = ""
	o.state = domain.StateIdle
	o.Selection = nil
}

// Registry keeps pending operations by token so the confirm call can find
// what the stage call created. Low-frequency human-driven tool: a plain map
// behind a mutex is plenty.
type Registry struct {
	mu  sync.Mutex
	ops map[uuid.UUID]*Operation
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[uuid.UUID]*Operation)}
}

// Stage creates and remembers a Confirming operation.
func (r *Registry) Stage(keyField domain.KeyField, selection []domain.VariantRecord, action domain.BulkAction) *Operation {
	op := NewOperation(keyField, selection, action)
	r.mu.Lock()
	r.ops[op.Token] = op
	r.mu.Unlock()
	return op
}

// Get looks up a pending operation by its token.
func (r *Registry) Get(token uuid.UUID) (*Operation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.ops[token]
	return op, ok
}

// Remove drops a finished operation.
func (r *Registry) Remove(token uuid.UUID) {
	r.mu.Lock()
	delete(r.ops, token)
	r.mu.Unlock()
}
