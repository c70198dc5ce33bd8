package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wms-platform/outbound-config-service/internal/domain"
	"github.com/wms-platform/outbound-config-service/pkg/cloudevents"
	"github.com/wms-platform/outbound-config-service/pkg/errors"
	"github.com/wms-platform/outbound-config-service/pkg/kafka"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
)

// WizardApplicationService drives the outbound setup flow. Sessions are held
// in memory: the flow is an operator-facing walkthrough over the persisted
// configuration records, and losing a session only loses the cursor position.
type WizardApplicationService struct {
	mu       sync.RWMutex
	sessions map[string]*domain.WizardSession

	groups       InventoryGroupRepository
	sequences    TaskSequenceRepository
	strategies   PickStrategyRepository
	huFormations HUFormationRepository
	workOrders   WorkOrderManagementRepository
	deps         *DependencyRules
	publisher    EventPublisher
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
}

// NewWizardApplicationService creates a new WizardApplicationService
func NewWizardApplicationService(
	groups InventoryGroupRepository,
	sequences TaskSequenceRepository,
	strategies PickStrategyRepository,
	huFormations HUFormationRepository,
	workOrders WorkOrderManagementRepository,
	deps *DependencyRules,
	publisher EventPublisher,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
) *WizardApplicationService {
	return &WizardApplicationService{
		sessions:     make(map[string]*domain.WizardSession),
		groups:       groups,
		sequences:    sequences,
		strategies:   strategies,
		huFormations: huFormations,
		workOrders:   workOrders,
		deps:         deps,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
	}
}

// CreateSession starts a new wizard session positioned at the first step
func (s *WizardApplicationService) CreateSession(ctx context.Context) (*WizardSessionDTO, error) {
	session := domain.NewWizardSession(uuid.New().String())

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "WizardSessionStarted",
		EntityType: "WizardSession",
		EntityID:   session.ID,
		Action:     "create",
	})

	event := s.eventFactory.CreateEvent(ctx, cloudevents.WizardSessionStarted, "wizard-session/"+session.ID, ToWizardSessionDTO(session))
	event.WizardSessionID = session.ID
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.WizardEvents, event)

	return ToWizardSessionDTO(session), nil
}

// GetSession retrieves a wizard session by ID
func (s *WizardApplicationService) GetSession(ctx context.Context, sessionID string) (*WizardSessionDTO, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return ToWizardSessionDTO(session), nil
}

// Next attempts to advance the session to the next step. The current step's
// completion predicate is evaluated against the persisted configuration; a
// refused advance is reported with a warning, not an error.
func (s *WizardApplicationService) Next(ctx context.Context, sessionID string) (*StepTransitionDTO, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	complete, err := s.stepComplete(ctx, session, session.CurrentStep)
	if err != nil {
		return nil, err
	}

	fromStep := session.CurrentStep

	s.mu.Lock()
	advanced := session.GoNext(complete)
	toStep := session.CurrentStep
	s.mu.Unlock()

	warning := ""
	if !advanced {
		if fromStep == domain.StepReviewConfirm {
			warning = "already on the final step"
		} else {
			warning = stepRequirement(fromStep)
		}
	}

	s.logger.WithContext(ctx).Info("Wizard step transition",
		"sessionId", sessionID,
		"fromStep", int(fromStep),
		"toStep", int(toStep),
		"advanced", advanced,
	)

	event := s.eventFactory.CreateWizardTransitionEvent(ctx, sessionID, int(fromStep), int(toStep), advanced, warning)
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.WizardEvents, event)

	return &StepTransitionDTO{
		Session:  *ToWizardSessionDTO(session),
		Advanced: advanced,
		Warning:  warning,
	}, nil
}

// Previous moves the session back one step. Moving back is always allowed.
func (s *WizardApplicationService) Previous(ctx context.Context, sessionID string) (*StepTransitionDTO, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	moved := session.GoPrevious()
	s.mu.Unlock()

	warning := ""
	if !moved {
		warning = "already on the first step"
	}

	return &StepTransitionDTO{
		Session:  *ToWizardSessionDTO(session),
		Advanced: moved,
		Warning:  warning,
	}, nil
}

// Jump moves the session directly to the given step
func (s *WizardApplicationService) Jump(ctx context.Context, cmd JumpToStepCommand) (*WizardSessionDTO, error) {
	session, err := s.lookup(cmd.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	err = session.JumpTo(domain.WizardStep(cmd.Step))
	s.mu.Unlock()
	if err != nil {
		return nil, errors.ErrValidation(err.Error()).
			WithDetail("step", fmt.Sprintf("%d", cmd.Step))
	}

	return ToWizardSessionDTO(session), nil
}

// Reset returns the session to the first step and clears confirmation
func (s *WizardApplicationService) Reset(ctx context.Context, sessionID string) (*WizardSessionDTO, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	session.Reset()
	s.mu.Unlock()

	event := s.eventFactory.CreateEvent(ctx, cloudevents.WizardSessionReset, "wizard-session/"+sessionID, ToWizardSessionDTO(session))
	event.WizardSessionID = sessionID
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.WizardEvents, event)

	return ToWizardSessionDTO(session), nil
}

// Confirm marks the setup as confirmed. Only allowed on the final step, and
// only once per session.
func (s *WizardApplicationService) Confirm(ctx context.Context, sessionID string) (*WizardSessionDTO, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	err = session.Confirm()
	s.mu.Unlock()
	if err != nil {
		if err == domain.ErrAlreadyConfirmed {
			return nil, errors.ErrConflict(err.Error())
		}
		return nil, errors.ErrValidation(err.Error())
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "WizardSetupConfirmed",
		EntityType: "WizardSession",
		EntityID:   sessionID,
		Action:     "confirm",
	})

	event := s.eventFactory.CreateEvent(ctx, cloudevents.WizardSetupConfirmed, "wizard-session/"+sessionID, ToWizardSessionDTO(session))
	event.WizardSessionID = sessionID
	publishEvent(ctx, s.publisher, s.logger, kafka.Topics.WizardEvents, event)

	return ToWizardSessionDTO(session), nil
}

// StepsReport evaluates the completion predicate of every step for a session
func (s *WizardApplicationService) StepsReport(ctx context.Context, sessionID string) ([]StepStatusDTO, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	report := make([]StepStatusDTO, 0, domain.StepCount)
	for step := domain.StepInventoryGroups; step <= domain.StepReviewConfirm; step++ {
		complete, err := s.stepComplete(ctx, session, step)
		if err != nil {
			return nil, err
		}
		report = append(report, StepStatusDTO{
			Step:     int(step),
			Name:     step.Name(),
			Complete: complete,
		})
	}
	return report, nil
}

func (s *WizardApplicationService) lookup(sessionID string) (*domain.WizardSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.ErrNotFoundWithID("wizard session", sessionID)
	}
	return session, nil
}

// stepComplete evaluates one step's completion predicate against the
// persisted configuration records
func (s *WizardApplicationService) stepComplete(ctx context.Context, session *domain.WizardSession, step domain.WizardStep) (bool, error) {
	switch step {
	case domain.StepInventoryGroups:
		return s.hasRecords(ctx, s.groups.Count)
	case domain.StepTaskSequences:
		return s.hasRecords(ctx, s.sequences.Count)
	case domain.StepPickStrategies:
		return s.hasRecords(ctx, s.strategies.Count)
	case domain.StepHUFormation:
		return s.hasRecords(ctx, s.huFormations.Count)
	case domain.StepWorkOrderManagement:
		return s.hasRecords(ctx, s.workOrders.Count)
	case domain.StepStockAllocation:
		return s.deps.AnyGroupFullyAllocated(ctx)
	case domain.StepReviewConfirm:
		return session.Confirmed, nil
	default:
		return false, nil
	}
}

func (s *WizardApplicationService) hasRecords(ctx context.Context, count func(context.Context) (int64, error)) (bool, error) {
	n, err := count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate step completion: %w", err)
	}
	return n > 0, nil
}

func stepRequirement(step domain.WizardStep) string {
	switch step {
	case domain.StepInventoryGroups:
		return "at least one inventory group is required"
	case domain.StepTaskSequences:
		return "at least one task sequence configuration is required"
	case domain.StepPickStrategies:
		return "at least one pick strategy is required"
	case domain.StepHUFormation:
		return "at least one HU formation configuration is required"
	case domain.StepWorkOrderManagement:
		return "at least one work order management configuration is required"
	case domain.StepStockAllocation:
		return "at least one group needs both a PICK and a PUT allocation strategy"
	default:
		return "step is incomplete"
	}
}
