package domain

import (
	"errors"
	"time"
)

// Task sequence errors
var (
	ErrEmptyTaskSequence  = errors.New("task sequence requires at least one token")
	ErrInvalidTaskToken   = errors.New("invalid task sequence token")
	ErrDuplicateTaskToken = errors.New("duplicate task sequence token")
	ErrMissingGroupID     = errors.New("inventory group id is required")
)

// TaskSequenceToken identifies a stage of the outbound flow
type TaskSequenceToken string

const (
	TokenOutboundReplen      TaskSequenceToken = "OUTBOUND_REPLEN"
	TokenOutboundPick        TaskSequenceToken = "OUTBOUND_PICK"
	TokenOutboundConsolidate TaskSequenceToken = "OUTBOUND_CONSOLIDATE"
	TokenOutboundPack        TaskSequenceToken = "OUTBOUND_PACK"
	TokenOutboundLoad        TaskSequenceToken = "OUTBOUND_LOAD"
)

// IsValid checks if the token is valid
func (t TaskSequenceToken) IsValid() bool {
	switch t {
	case TokenOutboundReplen, TokenOutboundPick, TokenOutboundConsolidate,
		TokenOutboundPack, TokenOutboundLoad:
		return true
	default:
		return false
	}
}

// TaskSequenceConfiguration defines the ordered stages outbound work passes
// through for one inventory group.
type TaskSequenceConfiguration struct {
	ID               int64               `bson:"_id"`
	InventoryGroupID int64               `bson:"inventoryGroupId"`
	Sequence         []TaskSequenceToken `bson:"sequence"`
	Description      string              `bson:"description,omitempty"`
	Version          int64               `bson:"version"`
	CreatedAt        time.Time           `bson:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt"`
}

// NewTaskSequenceConfiguration creates a new TaskSequenceConfiguration
func NewTaskSequenceConfiguration(inventoryGroupID int64, sequence []TaskSequenceToken, description string) (*TaskSequenceConfiguration, error) {
	if inventoryGroupID <= 0 {
		return nil, ErrMissingGroupID
	}
	if err := validateSequence(sequence); err != nil {
		return nil, err
	}

	now := time.Now()
	return &TaskSequenceConfiguration{
		InventoryGroupID: inventoryGroupID,
		Sequence:         sequence,
		Description:      description,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ReplaceSequence replaces the ordered token list and bumps the version
func (c *TaskSequenceConfiguration) ReplaceSequence(sequence []TaskSequenceToken) error {
	if err := validateSequence(sequence); err != nil {
		return err
	}

	c.Sequence = sequence
	c.Version++
	c.UpdatedAt = time.Now()
	return nil
}

// HasToken reports whether the sequence contains the given token
func (c *TaskSequenceConfiguration) HasToken(token TaskSequenceToken) bool {
	for _, t := range c.Sequence {
		if t == token {
			return true
		}
	}
	return false
}

func validateSequence(sequence []TaskSequenceToken) error {
	if len(sequence) == 0 {
		return ErrEmptyTaskSequence
	}

	seen := make(map[TaskSequenceToken]bool, len(sequence))
	for _, token := range sequence {
		if !token.IsValid() {
			return ErrInvalidTaskToken
		}
		if seen[token] {
			return ErrDuplicateTaskToken
		}
		seen[token] = true
	}
	return nil
}
