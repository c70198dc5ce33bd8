package application

import (
	"context"
	"io"
	"sync"

	"github.com/wms-platform/outbound-config-service/internal/domain"
	"github.com/wms-platform/outbound-config-service/pkg/cloudevents"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
)

// In-memory repository fakes with auto-assigned IDs and version-checked
// updates, mirroring the persistence contract the services rely on.

func newTestLogger() *logging.Logger {
	config := logging.DefaultConfig("test")
	config.Output = io.Discard
	return logging.New(config)
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []*cloudevents.WMSCloudEvent
	topics []string
	err    error
}

func (p *capturingPublisher) PublishEvent(ctx context.Context, topic string, event *cloudevents.WMSCloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, event := range p.events {
		types[i] = event.Type
	}
	return types
}

type idSeq struct {
	next int64
}

func (s *idSeq) take() int64 {
	s.next++
	return s.next
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// fakeGroupRepo

type fakeGroupRepo struct {
	seq     idSeq
	groups  map[int64]*domain.InventoryGroup
	order   []int64
	saveErr error
	findErr error
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[int64]*domain.InventoryGroup)}
}

func (r *fakeGroupRepo) Save(ctx context.Context, group *domain.InventoryGroup) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	group.ID = r.seq.take()
	r.groups[group.ID] = group
	r.order = append(r.order, group.ID)
	return nil
}

func (r *fakeGroupRepo) FindByID(ctx context.Context, id int64) (*domain.InventoryGroup, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.groups[id], nil
}

func (r *fakeGroupRepo) FindByIdentifiers(ctx context.Context, storageInstruction, locationInstruction string) (*domain.InventoryGroup, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, group := range r.groups {
		if group.StorageInstruction == storageInstruction && group.LocationInstruction == locationInstruction {
			return group, nil
		}
	}
	return nil, nil
}

func (r *fakeGroupRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.InventoryGroup, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	result := make([]*domain.InventoryGroup, 0, len(r.order))
	for _, id := range r.order {
		if group, ok := r.groups[id]; ok {
			result = append(result, group)
		}
	}
	return paginate(result, limit, offset), nil
}

func (r *fakeGroupRepo) Update(ctx context.Context, group *domain.InventoryGroup, expectedVersion int64) error {
	stored, ok := r.groups[group.ID]
	if !ok {
		return ErrVersionConflict
	}
	// Services mutate the fetched record in place before the version check,
	// so a same-pointer update arrives with the version already bumped.
	if stored == group {
		if group.Version != expectedVersion+1 {
			return ErrVersionConflict
		}
		return nil
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.groups[group.ID] = group
	return nil
}

func (r *fakeGroupRepo) Delete(ctx context.Context, id int64) error {
	delete(r.groups, id)
	return nil
}

func (r *fakeGroupRepo) Count(ctx context.Context) (int64, error) {
	if r.findErr != nil {
		return 0, r.findErr
	}
	return int64(len(r.groups)), nil
}

// fakeSequenceRepo

type fakeSequenceRepo struct {
	seq     idSeq
	cfgs    map[int64]*domain.TaskSequenceConfiguration
	saveErr error
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{cfgs: make(map[int64]*domain.TaskSequenceConfiguration)}
}

func (r *fakeSequenceRepo) Save(ctx context.Context, cfg *domain.TaskSequenceConfiguration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cfg.ID = r.seq.take()
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeSequenceRepo) FindByID(ctx context.Context, id int64) (*domain.TaskSequenceConfiguration, error) {
	return r.cfgs[id], nil
}

func (r *fakeSequenceRepo) FindByGroupID(ctx context.Context, groupID int64) ([]*domain.TaskSequenceConfiguration, error) {
	var result []*domain.TaskSequenceConfiguration
	for _, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID {
			result = append(result, cfg)
		}
	}
	return result, nil
}

func (r *fakeSequenceRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.TaskSequenceConfiguration, error) {
	result := make([]*domain.TaskSequenceConfiguration, 0, len(r.cfgs))
	for _, cfg := range r.cfgs {
		result = append(result, cfg)
	}
	return paginate(result, limit, offset), nil
}

func (r *fakeSequenceRepo) Update(ctx context.Context, cfg *domain.TaskSequenceConfiguration, expectedVersion int64) error {
	stored, ok := r.cfgs[cfg.ID]
	if !ok {
		return ErrVersionConflict
	}
	if stored == cfg {
		if cfg.Version != expectedVersion+1 {
			return ErrVersionConflict
		}
		return nil
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeSequenceRepo) Delete(ctx context.Context, id int64) error {
	delete(r.cfgs, id)
	return nil
}

func (r *fakeSequenceRepo) DeleteByGroupID(ctx context.Context, groupID int64) (int64, error) {
	var n int64
	for id, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID {
			delete(r.cfgs, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeSequenceRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.cfgs)), nil
}

// fakeStrategyRepo

type fakeStrategyRepo struct {
	seq     idSeq
	cfgs    map[int64]*domain.PickStrategyConfiguration
	saveErr error
}

func newFakeStrategyRepo() *fakeStrategyRepo {
	return &fakeStrategyRepo{cfgs: make(map[int64]*domain.PickStrategyConfiguration)}
}

func (r *fakeStrategyRepo) Save(ctx context.Context, cfg *domain.PickStrategyConfiguration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cfg.ID = r.seq.take()
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeStrategyRepo) FindByID(ctx context.Context, id int64) (*domain.PickStrategyConfiguration, error) {
	return r.cfgs[id], nil
}

func (r *fakeStrategyRepo) FindByGroupID(ctx context.Context, groupID int64) ([]*domain.PickStrategyConfiguration, error) {
	var result []*domain.PickStrategyConfiguration
	for _, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID {
			result = append(result, cfg)
		}
	}
	return result, nil
}

func (r *fakeStrategyRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.PickStrategyConfiguration, error) {
	result := make([]*domain.PickStrategyConfiguration, 0, len(r.cfgs))
	for _, cfg := range r.cfgs {
		result = append(result, cfg)
	}
	return paginate(result, limit, offset), nil
}

func (r *fakeStrategyRepo) Update(ctx context.Context, cfg *domain.PickStrategyConfiguration, expectedVersion int64) error {
	stored, ok := r.cfgs[cfg.ID]
	if !ok {
		return ErrVersionConflict
	}
	if stored == cfg {
		if cfg.Version != expectedVersion+1 {
			return ErrVersionConflict
		}
		return nil
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeStrategyRepo) Delete(ctx context.Context, id int64) error {
	delete(r.cfgs, id)
	return nil
}

func (r *fakeStrategyRepo) DeleteByGroupID(ctx context.Context, groupID int64) (int64, error) {
	var n int64
	for id, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID {
			delete(r.cfgs, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeStrategyRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.cfgs)), nil
}

// fakeHUFormationRepo

type fakeHUFormationRepo struct {
	seq     idSeq
	cfgs    map[int64]*domain.HUFormationConfiguration
	saveErr error
}

func newFakeHUFormationRepo() *fakeHUFormationRepo {
	return &fakeHUFormationRepo{cfgs: make(map[int64]*domain.HUFormationConfiguration)}
}

func (r *fakeHUFormationRepo) Save(ctx context.Context, cfg *domain.HUFormationConfiguration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cfg.ID = r.seq.take()
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeHUFormationRepo) FindByID(ctx context.Context, id int64) (*domain.HUFormationConfiguration, error) {
	return r.cfgs[id], nil
}

func (r *fakeHUFormationRepo) FindByStrategyID(ctx context.Context, strategyID int64) (*domain.HUFormationConfiguration, error) {
	for _, cfg := range r.cfgs {
		if cfg.PickStrategyID == strategyID {
			return cfg, nil
		}
	}
	return nil, nil
}

func (r *fakeHUFormationRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.HUFormationConfiguration, error) {
	result := make([]*domain.HUFormationConfiguration, 0, len(r.cfgs))
	for _, cfg := range r.cfgs {
		result = append(result, cfg)
	}
	return paginate(result, limit, offset), nil
}

func (r *fakeHUFormationRepo) Update(ctx context.Context, cfg *domain.HUFormationConfiguration, expectedVersion int64) error {
	stored, ok := r.cfgs[cfg.ID]
	if !ok {
		return ErrVersionConflict
	}
	if stored == cfg {
		if cfg.Version != expectedVersion+1 {
			return ErrVersionConflict
		}
		return nil
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeHUFormationRepo) Delete(ctx context.Context, id int64) error {
	delete(r.cfgs, id)
	return nil
}

func (r *fakeHUFormationRepo) DeleteByStrategyID(ctx context.Context, strategyID int64) (int64, error) {
	var n int64
	for id, cfg := range r.cfgs {
		if cfg.PickStrategyID == strategyID {
			delete(r.cfgs, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeHUFormationRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.cfgs)), nil
}

// fakeWorkOrderRepo

type fakeWorkOrderRepo struct {
	seq     idSeq
	cfgs    map[int64]*domain.WorkOrderManagementConfiguration
	saveErr error
}

func newFakeWorkOrderRepo() *fakeWorkOrderRepo {
	return &fakeWorkOrderRepo{cfgs: make(map[int64]*domain.WorkOrderManagementConfiguration)}
}

func (r *fakeWorkOrderRepo) Save(ctx context.Context, cfg *domain.WorkOrderManagementConfiguration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cfg.ID = r.seq.take()
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeWorkOrderRepo) FindByID(ctx context.Context, id int64) (*domain.WorkOrderManagementConfiguration, error) {
	return r.cfgs[id], nil
}

func (r *fakeWorkOrderRepo) FindByStrategyID(ctx context.Context, strategyID int64) (*domain.WorkOrderManagementConfiguration, error) {
	for _, cfg := range r.cfgs {
		if cfg.PickStrategyID == strategyID {
			return cfg, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkOrderRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.WorkOrderManagementConfiguration, error) {
	result := make([]*domain.WorkOrderManagementConfiguration, 0, len(r.cfgs))
	for _, cfg := range r.cfgs {
		result = append(result, cfg)
	}
	return paginate(result, limit, offset), nil
}

func (r *fakeWorkOrderRepo) Update(ctx context.Context, cfg *domain.WorkOrderManagementConfiguration, expectedVersion int64) error {
	stored, ok := r.cfgs[cfg.ID]
	if !ok {
		return ErrVersionConflict
	}
	if stored == cfg {
		if cfg.Version != expectedVersion+1 {
			return ErrVersionConflict
		}
		return nil
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeWorkOrderRepo) Delete(ctx context.Context, id int64) error {
	delete(r.cfgs, id)
	return nil
}

func (r *fakeWorkOrderRepo) DeleteByStrategyID(ctx context.Context, strategyID int64) (int64, error) {
	var n int64
	for id, cfg := range r.cfgs {
		if cfg.PickStrategyID == strategyID {
			delete(r.cfgs, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeWorkOrderRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.cfgs)), nil
}

// fakeAllocationRepo

type fakeAllocationRepo struct {
	seq     idSeq
	cfgs    map[int64]*domain.StockAllocationStrategy
	saveErr error
}

func newFakeAllocationRepo() *fakeAllocationRepo {
	return &fakeAllocationRepo{cfgs: make(map[int64]*domain.StockAllocationStrategy)}
}

func (r *fakeAllocationRepo) Save(ctx context.Context, strategy *domain.StockAllocationStrategy) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	strategy.ID = r.seq.take()
	r.cfgs[strategy.ID] = strategy
	return nil
}

func (r *fakeAllocationRepo) FindByID(ctx context.Context, id int64) (*domain.StockAllocationStrategy, error) {
	return r.cfgs[id], nil
}

func (r *fakeAllocationRepo) FindByGroupID(ctx context.Context, groupID int64) ([]*domain.StockAllocationStrategy, error) {
	var result []*domain.StockAllocationStrategy
	for _, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID {
			result = append(result, cfg)
		}
	}
	return result, nil
}

func (r *fakeAllocationRepo) FindByGroupAndMode(ctx context.Context, groupID int64, mode domain.AllocationMode) ([]*domain.StockAllocationStrategy, error) {
	var result []*domain.StockAllocationStrategy
	for _, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID && cfg.Mode == mode {
			result = append(result, cfg)
		}
	}
	return result, nil
}

func (r *fakeAllocationRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.StockAllocationStrategy, error) {
	result := make([]*domain.StockAllocationStrategy, 0, len(r.cfgs))
	for _, cfg := range r.cfgs {
		result = append(result, cfg)
	}
	return paginate(result, limit, offset), nil
}

func (r *fakeAllocationRepo) Update(ctx context.Context, strategy *domain.StockAllocationStrategy, expectedVersion int64) error {
	stored, ok := r.cfgs[strategy.ID]
	if !ok {
		return ErrVersionConflict
	}
	if stored == strategy {
		if strategy.Version != expectedVersion+1 {
			return ErrVersionConflict
		}
		return nil
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.cfgs[strategy.ID] = strategy
	return nil
}

func (r *fakeAllocationRepo) Delete(ctx context.Context, id int64) error {
	delete(r.cfgs, id)
	return nil
}

func (r *fakeAllocationRepo) DeleteByGroupID(ctx context.Context, groupID int64) (int64, error) {
	var n int64
	for id, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID {
			delete(r.cfgs, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeAllocationRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.cfgs)), nil
}

// fakePlanningRepo

type fakePlanningRepo struct {
	seq     idSeq
	cfgs    map[int64]*domain.TaskPlanningConfiguration
	saveErr error
}

func newFakePlanningRepo() *fakePlanningRepo {
	return &fakePlanningRepo{cfgs: make(map[int64]*domain.TaskPlanningConfiguration)}
}

func (r *fakePlanningRepo) Save(ctx context.Context, cfg *domain.TaskPlanningConfiguration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cfg.ID = r.seq.take()
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakePlanningRepo) FindByID(ctx context.Context, id int64) (*domain.TaskPlanningConfiguration, error) {
	return r.cfgs[id], nil
}

func (r *fakePlanningRepo) FindByGroupID(ctx context.Context, groupID int64) ([]*domain.TaskPlanningConfiguration, error) {
	var result []*domain.TaskPlanningConfiguration
	for _, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID {
			result = append(result, cfg)
		}
	}
	return result, nil
}

func (r *fakePlanningRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.TaskPlanningConfiguration, error) {
	result := make([]*domain.TaskPlanningConfiguration, 0, len(r.cfgs))
	for _, cfg := range r.cfgs {
		result = append(result, cfg)
	}
	return paginate(result, limit, offset), nil
}

func (r *fakePlanningRepo) Update(ctx context.Context, cfg *domain.TaskPlanningConfiguration, expectedVersion int64) error {
	stored, ok := r.cfgs[cfg.ID]
	if !ok {
		return ErrVersionConflict
	}
	if stored == cfg {
		if cfg.Version != expectedVersion+1 {
			return ErrVersionConflict
		}
		return nil
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakePlanningRepo) Delete(ctx context.Context, id int64) error {
	delete(r.cfgs, id)
	return nil
}

func (r *fakePlanningRepo) DeleteByGroupID(ctx context.Context, groupID int64) (int64, error) {
	var n int64
	for id, cfg := range r.cfgs {
		if cfg.InventoryGroupID == groupID {
			delete(r.cfgs, id)
			n++
		}
	}
	return n, nil
}

// fakeExecutionRepo

type fakeExecutionRepo struct {
	seq     idSeq
	cfgs    map[int64]*domain.TaskExecutionConfiguration
	saveErr error
}

func newFakeExecutionRepo() *fakeExecutionRepo {
	return &fakeExecutionRepo{cfgs: make(map[int64]*domain.TaskExecutionConfiguration)}
}

func (r *fakeExecutionRepo) Save(ctx context.Context, cfg *domain.TaskExecutionConfiguration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cfg.ID = r.seq.take()
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeExecutionRepo) FindByID(ctx context.Context, id int64) (*domain.TaskExecutionConfiguration, error) {
	return r.cfgs[id], nil
}

func (r *fakeExecutionRepo) FindByPlanningID(ctx context.Context, planningID int64) (*domain.TaskExecutionConfiguration, error) {
	for _, cfg := range r.cfgs {
		if cfg.TaskPlanningID == planningID {
			return cfg, nil
		}
	}
	return nil, nil
}

func (r *fakeExecutionRepo) Update(ctx context.Context, cfg *domain.TaskExecutionConfiguration, expectedVersion int64) error {
	stored, ok := r.cfgs[cfg.ID]
	if !ok {
		return ErrVersionConflict
	}
	if stored == cfg {
		if cfg.Version != expectedVersion+1 {
			return ErrVersionConflict
		}
		return nil
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	r.cfgs[cfg.ID] = cfg
	return nil
}

func (r *fakeExecutionRepo) Delete(ctx context.Context, id int64) error {
	delete(r.cfgs, id)
	return nil
}

func (r *fakeExecutionRepo) DeleteByPlanningID(ctx context.Context, planningID int64) (int64, error) {
	var n int64
	for id, cfg := range r.cfgs {
		if cfg.TaskPlanningID == planningID {
			delete(r.cfgs, id)
			n++
		}
	}
	return n, nil
}

// fakeTemplateRepo

type fakeTemplateRepo struct {
	seq       idSeq
	templates map[int64]*domain.Template
	saveErr   error
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[int64]*domain.Template)}
}

func (r *fakeTemplateRepo) Save(ctx context.Context, template *domain.Template) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	template.ID = r.seq.take()
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) FindByID(ctx context.Context, id int64) (*domain.Template, error) {
	return r.templates[id], nil
}

func (r *fakeTemplateRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.Template, error) {
	result := make([]*domain.Template, 0, len(r.templates))
	for _, template := range r.templates {
		result = append(result, template)
	}
	return paginate(result, limit, offset), nil
}

func (r *fakeTemplateRepo) Delete(ctx context.Context, id int64) error {
	delete(r.templates, id)
	return nil
}

// testEnv wires every fake repository into the full service set
type testEnv struct {
	groups       *fakeGroupRepo
	sequences    *fakeSequenceRepo
	strategies   *fakeStrategyRepo
	huFormations *fakeHUFormationRepo
	workOrders   *fakeWorkOrderRepo
	allocations  *fakeAllocationRepo
	planning     *fakePlanningRepo
	executions   *fakeExecutionRepo
	templates    *fakeTemplateRepo
	publisher    *capturingPublisher
	deps         *DependencyRules

	groupSvc      *InventoryGroupApplicationService
	sequenceSvc   *TaskSequenceApplicationService
	strategySvc   *PickStrategyApplicationService
	allocationSvc *StockAllocationApplicationService
	planningSvc   *TaskPlanningApplicationService
	wizardSvc     *WizardApplicationService
	templateSvc   *TemplateApplicationService
	exportSvc     *ExportApplicationService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		groups:       newFakeGroupRepo(),
		sequences:    newFakeSequenceRepo(),
		strategies:   newFakeStrategyRepo(),
		huFormations: newFakeHUFormationRepo(),
		workOrders:   newFakeWorkOrderRepo(),
		allocations:  newFakeAllocationRepo(),
		planning:     newFakePlanningRepo(),
		executions:   newFakeExecutionRepo(),
		templates:    newFakeTemplateRepo(),
		publisher:    &capturingPublisher{},
	}

	logger := newTestLogger()
	factory := cloudevents.NewEventFactory(cloudevents.SourceOutboundConfig)
	env.deps = NewDependencyRules(env.groups, env.strategies, env.planning, env.allocations)

	env.groupSvc = NewInventoryGroupApplicationService(
		env.groups, env.sequences, env.strategies, env.huFormations, env.workOrders,
		env.allocations, env.planning, env.executions, env.deps, env.publisher, factory, logger,
	)
	env.sequenceSvc = NewTaskSequenceApplicationService(env.sequences, env.deps, env.publisher, factory, logger)
	env.strategySvc = NewPickStrategyApplicationService(
		env.strategies, env.huFormations, env.workOrders, env.deps, env.publisher, factory, logger,
	)
	env.allocationSvc = NewStockAllocationApplicationService(env.allocations, env.deps, env.publisher, factory, logger)
	env.planningSvc = NewTaskPlanningApplicationService(env.planning, env.executions, env.deps, env.publisher, factory, logger)
	env.wizardSvc = NewWizardApplicationService(
		env.groups, env.sequences, env.strategies, env.huFormations, env.workOrders,
		env.deps, env.publisher, factory, logger,
	)
	env.templateSvc = NewTemplateApplicationService(
		env.templates, env.groups, env.sequences, env.strategies, env.huFormations,
		env.workOrders, env.allocations, env.planning, env.executions, env.publisher, factory, logger,
	)
	env.exportSvc = NewExportApplicationService(
		env.groups, env.sequences, env.strategies, env.huFormations, env.workOrders,
		env.allocations, env.planning, env.executions, env.deps, env.publisher, factory, logger,
	)
	return env
}

// mustCreateGroup seeds one group and returns its DTO
func (env *testEnv) mustCreateGroup(ctx context.Context, storageInstruction, locationInstruction string) *InventoryGroupDTO {
	dto, err := env.groupSvc.CreateGroup(ctx, CreateInventoryGroupCommand{
		Description:         storageInstruction + " group",
		StorageInstruction:  storageInstruction,
		LocationInstruction: locationInstruction,
		UOM:                 "EACH",
		Bucket:              "GOOD",
	})
	if err != nil {
		panic(err)
	}
	return dto
}
