package cloudevents

import (
	"time"
)

// EventType constants for outbound configuration domain events
const (
	// Configuration record events
	ConfigCreated = "wms.outbound-config.record.created"
	ConfigUpdated = "wms.outbound-config.record.updated"
	ConfigDeleted = "wms.outbound-config.record.deleted"

	// Inventory group events
	InventoryGroupCreated = "wms.outbound-config.inventory-group.created"
	InventoryGroupDeleted = "wms.outbound-config.inventory-group.deleted"

	// Wizard events
	WizardSessionStarted = "wms.outbound-config.wizard.session-started"
	WizardStepAdvanced   = "wms.outbound-config.wizard.step-advanced"
	WizardStepBlocked    = "wms.outbound-config.wizard.step-blocked"
	WizardSetupConfirmed = "wms.outbound-config.wizard.setup-confirmed"
	WizardSessionReset   = "wms.outbound-config.wizard.session-reset"

	// Template events
	TemplateApplied   = "wms.outbound-config.template.applied"
	QuickSetupApplied = "wms.outbound-config.quick-setup.applied"

	// Export events
	ConfigurationExported = "wms.outbound-config.exported"
)

// Source constants for event sources
const (
	SourceOutboundConfig = "/wms/outbound-config-service"
)

// WMSCloudEvent represents a CloudEvents v1.0 compliant event for WMS
type WMSCloudEvent struct {
	SpecVersion     string                 `json:"specversion"`
	Type            string                 `json:"type"`
	Source          string                 `json:"source"`
	Subject         string                 `json:"subject,omitempty"`
	ID              string                 `json:"id"`
	Time            time.Time              `json:"time"`
	DataContentType string                 `json:"datacontenttype"`
	Data            interface{}            `json:"data"`
	Extensions      map[string]interface{} `json:"-"`

	// WMS-specific extensions
	CorrelationID   string `json:"wmscorrelationid,omitempty"`
	WizardSessionID string `json:"wmswizardsessionid,omitempty"`

	// W3C Trace Context
	TraceParent string `json:"traceparent,omitempty"`
	TraceState  string `json:"tracestate,omitempty"`
}

// ConfigRecordData represents the data payload for configuration record events
type ConfigRecordData struct {
	EntityType string `json:"entityType"`
	EntityID   int64  `json:"entityId"`
	Version    int64  `json:"version,omitempty"`
	ParentType string `json:"parentType,omitempty"`
	ParentID   int64  `json:"parentId,omitempty"`
}

// InventoryGroupData represents the data payload for inventory group events
type InventoryGroupData struct {
	GroupID             int64  `json:"groupId"`
	Description         string `json:"description"`
	StorageInstruction  string `json:"storageInstruction"`
	LocationInstruction string `json:"locationInstruction"`
	CascadedDeletes     int    `json:"cascadedDeletes,omitempty"`
}

// WizardTransitionData represents the data payload for wizard step events
type WizardTransitionData struct {
	SessionID string `json:"sessionId"`
	FromStep  int    `json:"fromStep"`
	ToStep    int    `json:"toStep"`
	Advanced  bool   `json:"advanced"`
	Warning   string `json:"warning,omitempty"`
}

// TemplateAppliedData represents the data payload for template application events
type TemplateAppliedData struct {
	TemplateID     int64          `json:"templateId,omitempty"`
	TemplateName   string         `json:"templateName"`
	CreatedCounts  map[string]int `json:"createdCounts"`
	Compensated    bool           `json:"compensated"`
	FailureMessage string         `json:"failureMessage,omitempty"`
}

// ConfigurationExportedData represents the data payload for export events
type ConfigurationExportedData struct {
	GroupCount  int `json:"groupCount"`
	RecordCount int `json:"recordCount"`
}
