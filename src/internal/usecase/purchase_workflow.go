package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Empire688682/chipsub-mobile/src/internal/errs"
	"github.com/Empire688682/chipsub-mobile/src/internal/model"
	"github.com/Empire688682/chipsub-mobile/src/internal/pricing"
)

var phonePattern = regexp.MustCompile(`^\d{11}$`)

// PurchaseWorkflow is the state machine of one purchase attempt:
// Idle -> Validating -> (VerifyingIdentifier) -> Pricing ->
// AwaitingAuthorization -> Submitting -> Reconciling -> Completed|Failed.
// Completed and Failed are terminal; a retry starts a new workflow with a
// new reference.
type PurchaseWorkflow struct {
	engine *PurchaseUseCase
	desc   ProductDescriptor

	mu           sync.Mutex
	request      *model.PurchaseRequest
	state        model.WorkflowState
	running      bool
	reference    string
	amount       float64
	customerName string
	failure      error
	pinSetup     bool
	onTransition func(model.PurchaseTransition)
}

func (w *PurchaseWorkflow) Reference() string { return w.reference }

func (w *PurchaseWorkflow) State() model.WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// CustomerName returns the name resolved by identifier verification.
func (w *PurchaseWorkflow) CustomerName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.customerName
}

// Failure returns the terminal failure reason, if any.
func (w *PurchaseWorkflow) Failure() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

// OnTransition registers the observer the UI renders state from.
func (w *PurchaseWorkflow) OnTransition(fn func(model.PurchaseTransition)) {
	w.mu.Lock()
	w.onTransition = fn
	w.mu.Unlock()
}

// UpdateRequest replaces the raw input. Only an idle workflow accepts
// edits; once side effects begin the attempt is immutable.
func (w *PurchaseWorkflow) UpdateRequest(request *model.PurchaseRequest) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.state != model.StateIdle {
		return errs.ErrSubmissionInProgress
	}
	w.request = request
	return nil
}

// Run drives the attempt through the full sequence. Side effects happen
// in a fixed order, each gated on the previous step: at most one
// verification call, one pricing computation, one submission carrying
// this attempt's reference, one snapshot refresh. Local validation
// failures return the workflow to Idle without touching the network;
// verification, authorization and submission failures are terminal.
func (w *PurchaseWorkflow) Run(ctx context.Context) (*model.PurchaseResult, error) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil, errs.ErrSubmissionInProgress
	}
	if w.state.IsTerminal() {
		w.mu.Unlock()
		return nil, errs.ErrWorkflowFinished
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	w.transition(model.StateValidating, "")
	session := w.engine.Session.Current()
	if !session.IsAuthenticated() {
		w.transition(model.StateIdle, errs.ErrNotAuthenticated.Error())
		return nil, errs.ErrNotAuthenticated
	}
	if err := w.validate(); err != nil {
		w.transition(model.StateIdle, err.Error())
		return nil, err
	}

	if w.desc.RequiresVerification {
		w.transition(model.StateVerifyingIdentifier, "")
		name, err := w.engine.Backend.VerifyIdentifier(ctx, &model.VerifyIdentifierRequest{
			Identifier:   w.request.TargetIdentifier,
			ProviderCode: w.request.ProviderCode,
			ProductType:  w.desc.Type,
		})
		if err != nil {
			var verification *errs.VerificationFailed
			if !errors.As(err, &verification) {
				verification = &errs.VerificationFailed{
					Identifier: w.request.TargetIdentifier,
					Provider:   w.request.ProviderCode,
				}
			}
			return w.fail(verification, verification.Error()), verification
		}
		w.mu.Lock()
		w.customerName = name
		w.mu.Unlock()
	}

	w.transition(model.StatePricing, "")
	amount, err := w.resolveAmount()
	if err != nil {
		w.transition(model.StateIdle, err.Error())
		return nil, err
	}
	w.mu.Lock()
	w.amount = amount
	w.mu.Unlock()

	w.transition(model.StateAwaitingAuthorization, "")
	if w.request.Pin == w.engine.ForbiddenPin {
		w.mu.Lock()
		w.pinSetup = true
		w.mu.Unlock()
		return w.fail(errs.ErrForbiddenPin, w.engine.ForbiddenPin+" is not allowed"), errs.ErrForbiddenPin
	}

	w.transition(model.StateSubmitting, "")
	resp, err := w.engine.Backend.SubmitPurchase(ctx, w.submission(session.UserID, amount))
	if err != nil {
		return w.fail(err, "submission failed"), err
	}
	if !resp.Success {
		// nothing changed server-side, so no resync either
		failure := fmt.Errorf("purchase rejected: %s", resp.Message)
		return w.fail(failure, resp.Message), failure
	}

	w.transition(model.StateReconciling, "")
	w.engine.Sync.RefreshNow(ctx)

	w.transition(model.StateCompleted, resp.Message)
	return w.result(model.StateCompleted, resp.Message), nil
}

// validate checks required fields per product type and fails fast with
// the first violated rule. It never calls the network.
func (w *PurchaseWorkflow) validate() error {
	r := w.request
	if err := w.engine.Validate.Struct(r); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return &errs.ValidationError{
				Field:  strings.ToLower(invalid[0].Field()),
				Reason: "fails rule " + invalid[0].Tag(),
			}
		}
		return &errs.ValidationError{Field: "request", Reason: err.Error()}
	}

	if w.desc.RequiresProvider && r.ProviderCode == "" {
		return &errs.ValidationError{Field: "provider", Reason: "provider is required"}
	}

	switch w.desc.Identifier {
	case IdentifierPhone:
		if !phonePattern.MatchString(r.TargetIdentifier) {
			return &errs.ValidationError{Field: "number", Reason: "phone number must be exactly 11 digits"}
		}
	case IdentifierMeter:
		if r.TargetIdentifier == "" {
			return &errs.ValidationError{Field: "meterNumber", Reason: "meter number is required"}
		}
		if r.MeterType == "" {
			return &errs.ValidationError{Field: "meterType", Reason: "meter type is required"}
		}
	case IdentifierSmartcard:
		if r.TargetIdentifier == "" {
			return &errs.ValidationError{Field: "smartcardNumber", Reason: "smartcard number is required"}
		}
	}

	if w.desc.PriceSource == PriceCatalog {
		if r.PlanCode == "" {
			return &errs.ValidationError{Field: "plan", Reason: "choose a plan"}
		}
	} else {
		if r.Amount <= 0 || r.Amount < w.desc.MinimumAmount {
			return &errs.ValidationError{
				Field:  "amount",
				Reason: fmt.Sprintf("minimum amount is %.0f", w.desc.MinimumAmount),
			}
		}
	}
	return nil
}

// resolveAmount re-derives the charged amount at submission time. For
// catalog-priced products the sell price is recomputed from the base
// cost so a stale UI figure is never submitted; for the rest the user
// amount (already validated) is used directly.
func (w *PurchaseWorkflow) resolveAmount() (float64, error) {
	if w.desc.PriceSource != PriceCatalog {
		return w.request.Amount, nil
	}
	plan, ok := w.engine.Catalog.Plan(w.request.ProviderCode, w.request.PlanCode)
	if !ok {
		return 0, &errs.ValidationError{Field: "plan", Reason: "unknown plan for provider"}
	}
	return pricing.ResolveSellPrice(plan.BaseCost, w.engine.Catalog.Policy())
}

func (w *PurchaseWorkflow) submission(userID string, amount float64) *model.SubmitPurchaseRequest {
	return &model.SubmitPurchaseRequest{
		MobileUserID: userID,
		Provider:     w.request.ProviderCode,
		PlanID:       w.request.PlanCode,
		Number:       w.request.TargetIdentifier,
		MeterType:    w.request.MeterType,
		Amount:       amount,
		Pin:          w.request.Pin,
		Reference:    w.reference,
		ProductType:  w.desc.Type,
	}
}

func (w *PurchaseWorkflow) transition(to model.WorkflowState, reason string) {
	w.mu.Lock()
	from := w.state
	w.state = to
	fn := w.onTransition
	w.mu.Unlock()

	w.engine.Log.Info("purchase-workflow", fmt.Sprintf("%s -> %s", from, to), string(w.desc.Type), w.reference)
	if fn != nil {
		fn(model.PurchaseTransition{
			Reference: w.reference,
			From:      from,
			To:        to,
			Reason:    reason,
			At:        time.Now(),
		})
	}
}

func (w *PurchaseWorkflow) fail(reason error, note string) *model.PurchaseResult {
	w.mu.Lock()
	w.failure = reason
	w.mu.Unlock()
	w.transition(model.StateFailed, note)
	return w.result(model.StateFailed, note)
}

func (w *PurchaseWorkflow) result(state model.WorkflowState, message string) *model.PurchaseResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return &model.PurchaseResult{
		Reference:        w.reference,
		State:            state,
		Message:          message,
		Amount:           w.amount,
		CustomerName:     w.customerName,
		PinSetupRequired: w.pinSetup,
	}
}
