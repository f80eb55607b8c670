package model

import "time"

type WorkflowState string

const (
	StateIdle                  WorkflowState = "idle"
	StateValidating            WorkflowState = "validating"
	StateVerifyingIdentifier   WorkflowState = "verifying-identifier"
	StatePricing               WorkflowState = "pricing"
	StateAwaitingAuthorization WorkflowState = "awaiting-authorization"
	StateSubmitting            WorkflowState = "submitting"
	StateReconciling           WorkflowState = "reconciling"
	StateCompleted             WorkflowState = "completed"
	StateFailed                WorkflowState = "failed"
)

// IsTerminal reports whether the workflow can accept another run.
func (s WorkflowState) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

// PurchaseTransition is emitted to observers on every state change.
type PurchaseTransition struct {
	Reference string        `json:"reference"`
	From      WorkflowState `json:"from"`
	To        WorkflowState `json:"to"`
	Reason    string        `json:"reason,omitempty"`
	At        time.Time     `json:"at"`
}

// PurchaseResult is the terminal outcome of one workflow run.
type PurchaseResult struct {
	Reference        string        `json:"reference"`
	State            WorkflowState `json:"state"`
	Message          string        `json:"message"`
	Amount           float64       `json:"amount"`
	CustomerName     string        `json:"customerName,omitempty"`
	PinSetupRequired bool          `json:"pinSetupRequired,omitempty"`
}
