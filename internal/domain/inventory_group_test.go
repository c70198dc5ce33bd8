package domain

import (
	"testing"
)

func TestNewInventoryGroup(t *testing.T) {
	storage := StorageIdentifiers{UOM: "EA", Bucket: "GOOD"}
	line := LineIdentifiers{OrderKind: "B2C"}

	tests := []struct {
		name                string
		description         string
		storageInstruction  string
		locationInstruction string
		wantErr             error
	}{
		{"valid group", "Fast movers", "LOOSE", "FIXED", nil},
		{"missing description", "", "LOOSE", "FIXED", ErrEmptyDescription},
		{"blank description", "   ", "LOOSE", "FIXED", ErrEmptyDescription},
		{"missing storage instruction", "Fast movers", "", "FIXED", ErrEmptyStorageInstruction},
		{"missing location instruction", "Fast movers", "LOOSE", "", ErrEmptyLocationInstruction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, err := NewInventoryGroup(tt.description, tt.storageInstruction, tt.locationInstruction, storage, line)
			if err != tt.wantErr {
				t.Fatalf("NewInventoryGroup() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if group.Version != 1 {
					t.Errorf("Version = %d, want 1", group.Version)
				}
				if group.CreatedAt.IsZero() || group.UpdatedAt.IsZero() {
					t.Error("timestamps should be set")
				}
			}
		})
	}
}

func TestInventoryGroup_IdentifierKey(t *testing.T) {
	a, err := NewInventoryGroup("A", "LOOSE", "FIXED", StorageIdentifiers{}, LineIdentifiers{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewInventoryGroup("B", "LOOSE", "FIXED", StorageIdentifiers{}, LineIdentifiers{})
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewInventoryGroup("C", "LOOSE", "DYNAMIC", StorageIdentifiers{}, LineIdentifiers{})
	if err != nil {
		t.Fatal(err)
	}

	if a.IdentifierKey() != b.IdentifierKey() {
		t.Error("groups with the same instructions should share the identifier key")
	}
	if a.IdentifierKey() == c.IdentifierKey() {
		t.Error("groups with different instructions should not share the identifier key")
	}
}

func TestInventoryGroup_Update(t *testing.T) {
	group, err := NewInventoryGroup("Fast movers", "LOOSE", "FIXED", StorageIdentifiers{UOM: "EA"}, LineIdentifiers{})
	if err != nil {
		t.Fatal(err)
	}

	if err := group.Update("Slow movers", StorageIdentifiers{UOM: "CS"}, LineIdentifiers{OrderKind: "B2B"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if group.Description != "Slow movers" {
		t.Errorf("Description = %q", group.Description)
	}
	if group.Storage.UOM != "CS" {
		t.Errorf("Storage.UOM = %q", group.Storage.UOM)
	}
	if group.Version != 2 {
		t.Errorf("Version = %d, want 2", group.Version)
	}

	if err := group.Update("", StorageIdentifiers{}, LineIdentifiers{}); err != ErrEmptyDescription {
		t.Errorf("Update with empty description error = %v, want %v", err, ErrEmptyDescription)
	}
	if group.Version != 2 {
		t.Errorf("failed update must not bump version, Version = %d", group.Version)
	}
}

func TestTaskSequenceConfiguration_Validation(t *testing.T) {
	tests := []struct {
		name     string
		groupID  int64
		sequence []TaskSequenceToken
		wantErr  error
	}{
		{"valid sequence", 1, []TaskSequenceToken{TokenOutboundPick, TokenOutboundPack, TokenOutboundLoad}, nil},
		{"missing group", 0, []TaskSequenceToken{TokenOutboundPick}, ErrMissingGroupID},
		{"empty sequence", 1, nil, ErrEmptyTaskSequence},
		{"invalid token", 1, []TaskSequenceToken{TaskSequenceToken("PICKING")}, ErrInvalidTaskToken},
		{"duplicate token", 1, []TaskSequenceToken{TokenOutboundPick, TokenOutboundPick}, ErrDuplicateTaskToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTaskSequenceConfiguration(tt.groupID, tt.sequence, "")
			if err != tt.wantErr {
				t.Errorf("NewTaskSequenceConfiguration() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskSequenceConfiguration_HasToken(t *testing.T) {
	cfg, err := NewTaskSequenceConfiguration(1, []TaskSequenceToken{TokenOutboundPick, TokenOutboundLoad}, "")
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.HasToken(TokenOutboundPick) {
		t.Error("expected OUTBOUND_PICK to be present")
	}
	if cfg.HasToken(TokenOutboundPack) {
		t.Error("did not expect OUTBOUND_PACK")
	}
}

func TestHUFormationConfiguration_ApplyUpsert(t *testing.T) {
	original, err := NewHUFormationConfiguration(7, SingleTrip, MapAtPick, []HUKind{HUKindTote}, 50, 25.0, 2, HUFormationFlags{AutoCloseHU: true})
	if err != nil {
		t.Fatal(err)
	}
	original.ID = 100

	incoming, err := NewHUFormationConfiguration(7, MultiTrip, MapAtPack, []HUKind{HUKindPallet, HUKindCarton}, 100, 500.0, 5, HUFormationFlags{StageOnClose: true})
	if err != nil {
		t.Fatal(err)
	}

	original.ApplyUpsert(incoming)

	if original.ID != 100 {
		t.Errorf("ID = %d, identity must be preserved", original.ID)
	}
	if original.TripType != MultiTrip {
		t.Errorf("TripType = %v, want %v", original.TripType, MultiTrip)
	}
	if len(original.HUKinds) != 2 {
		t.Errorf("HUKinds = %v", original.HUKinds)
	}
	if original.Version != 2 {
		t.Errorf("Version = %d, want 2", original.Version)
	}
	if !original.Flags.StageOnClose || original.Flags.AutoCloseHU {
		t.Errorf("Flags = %+v, want the incoming payload's flags", original.Flags)
	}
}

func TestTemplateData_Validate(t *testing.T) {
	group := GroupSpec{Description: "G", StorageInstruction: "LOOSE", LocationInstruction: "FIXED"}

	tests := []struct {
		name    string
		data    TemplateData
		wantErr bool
	}{
		{"no groups", TemplateData{}, true},
		{"valid references", TemplateData{
			Groups:        []GroupSpec{group},
			TaskSequences: []TaskSequenceSpec{{GroupIndex: 0, Sequence: []TaskSequenceToken{TokenOutboundPick}}},
		}, false},
		{"dangling task sequence", TemplateData{
			Groups:        []GroupSpec{group},
			TaskSequences: []TaskSequenceSpec{{GroupIndex: 3}},
		}, true},
		{"dangling allocation", TemplateData{
			Groups:      []GroupSpec{group},
			Allocations: []AllocationSpec{{GroupIndex: -1, Mode: AllocationModePick}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
