package domain

import (
	"errors"
	"strings"
	"time"
)

// Inventory group errors
var (
	ErrEmptyDescription         = errors.New("description is required")
	ErrEmptyStorageInstruction  = errors.New("storage instruction is required")
	ErrEmptyLocationInstruction = errors.New("location instruction is required")
	ErrDuplicateIdentifiers     = errors.New("inventory group with these identifiers already exists")
)

// StorageIdentifiers describe how stock is stored for a group
type StorageIdentifiers struct {
	UOM           string   `bson:"uom" json:"uom"`
	Bucket        string   `bson:"bucket" json:"bucket"`
	Channel       string   `bson:"channel,omitempty" json:"channel,omitempty"`
	InclusionList []string `bson:"inclusionList,omitempty" json:"inclusionList,omitempty"`
}

// LineIdentifiers describe how order lines are matched to a group
type LineIdentifiers struct {
	OrderKind     string   `bson:"orderKind,omitempty" json:"orderKind,omitempty"`
	LineKind      string   `bson:"lineKind,omitempty" json:"lineKind,omitempty"`
	ChannelFilter []string `bson:"channelFilter,omitempty" json:"channelFilter,omitempty"`
}

// InventoryGroup is the root of the outbound configuration ownership graph.
// Task sequences, pick strategies, stock allocation strategies and task
// planning configurations all hang off a group.
type InventoryGroup struct {
	ID                  int64              `bson:"_id"`
	Description         string             `bson:"description"`
	StorageInstruction  string             `bson:"storageInstruction"`
	LocationInstruction string             `bson:"locationInstruction"`
	Storage             StorageIdentifiers `bson:"storage"`
	Line                LineIdentifiers    `bson:"line"`
	Version             int64              `bson:"version"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
	DomainEvents        []DomainEvent      `bson:"-"`
}

// NewInventoryGroup creates a new InventoryGroup aggregate
func NewInventoryGroup(description, storageInstruction, locationInstruction string, storage StorageIdentifiers, line LineIdentifiers) (*InventoryGroup, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if strings.TrimSpace(storageInstruction) == "" {
		return nil, ErrEmptyStorageInstruction
	}
	if strings.TrimSpace(locationInstruction) == "" {
		return nil, ErrEmptyLocationInstruction
	}

	now := time.Now()
	group := &InventoryGroup{
		Description:         description,
		StorageInstruction:  storageInstruction,
		LocationInstruction: locationInstruction,
		Storage:             storage,
		Line:                line,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
		DomainEvents:        make([]DomainEvent, 0),
	}

	return group, nil
}

// IdentifierKey returns the uniqueness key for the group
func (g *InventoryGroup) IdentifierKey() string {
	return g.StorageInstruction + "/" + g.LocationInstruction
}

// Update applies new field values and bumps the version
func (g *InventoryGroup) Update(description string, storage StorageIdentifiers, line LineIdentifiers) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}

	g.Description = description
	g.Storage = storage
	g.Line = line
	g.Version++
	g.UpdatedAt = time.Now()

	return nil
}

// AddDomainEvent adds a domain event
func (g *InventoryGroup) AddDomainEvent(event DomainEvent) {
	g.DomainEvents = append(g.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (g *InventoryGroup) ClearDomainEvents() {
	g.DomainEvents = make([]DomainEvent, 0)
}

// InventoryGroupCreatedEvent is emitted when a group is created
type InventoryGroupCreatedEvent struct {
	GroupID             int64     `json:"groupId"`
	StorageInstruction  string    `json:"storageInstruction"`
	LocationInstruction string    `json:"locationInstruction"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (e *InventoryGroupCreatedEvent) EventType() string     { return "inventory-group.created" }
func (e *InventoryGroupCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// InventoryGroupDeletedEvent is emitted when a group and its dependents are removed
type InventoryGroupDeletedEvent struct {
	GroupID         int64     `json:"groupId"`
	CascadedDeletes int       `json:"cascadedDeletes"`
	DeletedAt       time.Time `json:"deletedAt"`
}

func (e *InventoryGroupDeletedEvent) EventType() string     { return "inventory-group.deleted" }
func (e *InventoryGroupDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
