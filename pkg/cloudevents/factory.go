package cloudevents

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates CloudEvents for outbound configuration domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new WMSCloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *WMSCloudEvent {
	event := &WMSCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
		Extensions:      make(map[string]interface{}),
	}

	return event
}

// CreateEventWithCorrelation creates an event with correlation tracking
func (f *EventFactory) CreateEventWithCorrelation(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
	correlationID string,
) *WMSCloudEvent {
	event := f.CreateEvent(ctx, eventType, subject, data)
	event.CorrelationID = correlationID
	return event
}

// CreateConfigRecordEvent creates a configuration record lifecycle event
func (f *EventFactory) CreateConfigRecordEvent(
	ctx context.Context,
	eventType string,
	entityType string,
	entityID int64,
	version int64,
) *WMSCloudEvent {
	data := ConfigRecordData{
		EntityType: entityType,
		EntityID:   entityID,
		Version:    version,
	}
	subject := entityType + "/" + strconv.FormatInt(entityID, 10)
	return f.CreateEvent(ctx, eventType, subject, data)
}

// CreateInventoryGroupCreatedEvent creates an InventoryGroupCreated event
func (f *EventFactory) CreateInventoryGroupCreatedEvent(
	ctx context.Context,
	groupID int64,
	description string,
	storageInstruction string,
	locationInstruction string,
) *WMSCloudEvent {
	data := InventoryGroupData{
		GroupID:             groupID,
		Description:         description,
		StorageInstruction:  storageInstruction,
		LocationInstruction: locationInstruction,
	}
	return f.CreateEvent(ctx, InventoryGroupCreated, "inventory-group/"+strconv.FormatInt(groupID, 10), data)
}

// CreateInventoryGroupDeletedEvent creates an InventoryGroupDeleted event
func (f *EventFactory) CreateInventoryGroupDeletedEvent(
	ctx context.Context,
	groupID int64,
	cascadedDeletes int,
) *WMSCloudEvent {
	data := InventoryGroupData{
		GroupID:         groupID,
		CascadedDeletes: cascadedDeletes,
	}
	return f.CreateEvent(ctx, InventoryGroupDeleted, "inventory-group/"+strconv.FormatInt(groupID, 10), data)
}

// CreateWizardTransitionEvent creates a wizard step transition event
func (f *EventFactory) CreateWizardTransitionEvent(
	ctx context.Context,
	sessionID string,
	fromStep int,
	toStep int,
	advanced bool,
	warning string,
) *WMSCloudEvent {
	data := WizardTransitionData{
		SessionID: sessionID,
		FromStep:  fromStep,
		ToStep:    toStep,
		Advanced:  advanced,
		Warning:   warning,
	}
	eventType := WizardStepAdvanced
	if !advanced {
		eventType = WizardStepBlocked
	}
	event := f.CreateEvent(ctx, eventType, "wizard-session/"+sessionID, data)
	event.WizardSessionID = sessionID
	return event
}

// CreateTemplateAppliedEvent creates a TemplateApplied event
func (f *EventFactory) CreateTemplateAppliedEvent(
	ctx context.Context,
	templateName string,
	createdCounts map[string]int,
	compensated bool,
	failureMessage string,
) *WMSCloudEvent {
	data := TemplateAppliedData{
		TemplateName:   templateName,
		CreatedCounts:  createdCounts,
		Compensated:    compensated,
		FailureMessage: failureMessage,
	}
	return f.CreateEvent(ctx, TemplateApplied, "template/"+templateName, data)
}

// CreateQuickSetupAppliedEvent creates a QuickSetupApplied event
func (f *EventFactory) CreateQuickSetupAppliedEvent(
	ctx context.Context,
	createdCounts map[string]int,
) *WMSCloudEvent {
	data := TemplateAppliedData{
		TemplateName:  "quick-setup",
		CreatedCounts: createdCounts,
	}
	return f.CreateEvent(ctx, QuickSetupApplied, "template/quick-setup", data)
}

// CreateConfigurationExportedEvent creates a ConfigurationExported event
func (f *EventFactory) CreateConfigurationExportedEvent(
	ctx context.Context,
	groupCount int,
	recordCount int,
) *WMSCloudEvent {
	data := ConfigurationExportedData{
		GroupCount:  groupCount,
		RecordCount: recordCount,
	}
	return f.CreateEvent(ctx, ConfigurationExported, "export/outbound", data)
}
