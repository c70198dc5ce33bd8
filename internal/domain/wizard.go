package domain

import (
	"errors"
	"time"
)

// Wizard errors
var (
	ErrStepOutOfRange   = errors.New("step is out of range")
	ErrAlreadyConfirmed = errors.New("wizard session is already confirmed")
	ErrNotOnFinalStep   = errors.New("setup can only be confirmed on the final step")
)

// WizardStep identifies one step of the outbound setup flow
type WizardStep int

const (
	StepInventoryGroups WizardStep = iota + 1
	StepTaskSequences
	StepPickStrategies
	StepHUFormation
	StepWorkOrderManagement
	StepStockAllocation
	StepReviewConfirm
)

// StepCount is the number of steps in the canonical flow
const StepCount = int(StepReviewConfirm)

// Name returns the display name of the step
func (s WizardStep) Name() string {
	switch s {
	case StepInventoryGroups:
		return "Inventory Groups"
	case StepTaskSequences:
		return "Task Sequences"
	case StepPickStrategies:
		return "Pick Strategies"
	case StepHUFormation:
		return "HU Formation"
	case StepWorkOrderManagement:
		return "Work Order Management"
	case StepStockAllocation:
		return "Stock Allocation"
	case StepReviewConfirm:
		return "Review & Confirm"
	default:
		return "Unknown"
	}
}

// IsValid checks if the step is within the flow
func (s WizardStep) IsValid() bool {
	return s >= StepInventoryGroups && s <= StepReviewConfirm
}

// WizardSession tracks one user's position in the setup flow. Navigation
// backwards and direct jumps are unconditional; advancing requires the
// current step's completion predicate to hold.
type WizardSession struct {
	ID          string     `json:"id"`
	CurrentStep WizardStep `json:"currentStep"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewWizardSession creates a session positioned at the first step
func NewWizardSession(id string) *WizardSession {
	now := time.Now()
	return &WizardSession{
		ID:          id,
		CurrentStep: StepInventoryGroups,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// GoNext advances to the next step when the current step is complete.
// It returns whether the session advanced; refusal is not an error.
func (w *WizardSession) GoNext(currentStepComplete bool) bool {
	if w.CurrentStep >= StepReviewConfirm {
		return false
	}
	if !currentStepComplete {
		return false
	}

	w.CurrentStep++
	w.UpdatedAt = time.Now()
	return true
}

// GoPrevious moves back one step. Moving back is always allowed.
func (w *WizardSession) GoPrevious() bool {
	if w.CurrentStep <= StepInventoryGroups {
		return false
	}

	w.CurrentStep--
	w.UpdatedAt = time.Now()
	return true
}

// JumpTo moves directly to the given step
func (w *WizardSession) JumpTo(step WizardStep) error {
	if !step.IsValid() {
		return ErrStepOutOfRange
	}

	w.CurrentStep = step
	w.UpdatedAt = time.Now()
	return nil
}

// Reset returns the session to the first step and clears confirmation
func (w *WizardSession) Reset() {
	w.CurrentStep = StepInventoryGroups
	w.Confirmed = false
	w.ConfirmedAt = nil
	w.UpdatedAt = time.Now()
}

// Confirm marks the setup as confirmed. Only allowed on the final step.
func (w *WizardSession) Confirm() error {
	if w.Confirmed {
		return ErrAlreadyConfirmed
	}
	if w.CurrentStep != StepReviewConfirm {
		return ErrNotOnFinalStep
	}

	now := time.Now()
	w.Confirmed = true
	w.ConfirmedAt = &now
	w.UpdatedAt = now
	return nil
}
