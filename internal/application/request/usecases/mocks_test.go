package usecases

import (
	"context"
	"strings"
	"sync"

	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/domain/company"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/logger"
)

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockRequestRepository struct {
	CreateFunc           func(ctx context.Context, r *request.Request) error
	UpdateFunc           func(ctx context.Context, r *request.Request) error
	GetByIDFunc          func(ctx context.Context, id uint) (*request.Request, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uint) (*request.Request, error)
	GetByPublicIDFunc    func(ctx context.Context, publicID string) (*request.Request, error)
	ListFunc             func(ctx context.Context, filter request.ListFilter) ([]*request.Request, int64, error)
	CountFunc            func(ctx context.Context, scope request.Scope) (int64, error)
}

func (m *mockRequestRepository) Create(ctx context.Context, r *request.Request) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *mockRequestRepository) GetByID(ctx context.Context, id uint) (*request.Request, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRequestRepository) GetByIDForUpdate(ctx context.Context, id uint) (*request.Request, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *mockRequestRepository) GetByPublicID(ctx context.Context, publicID string) (*request.Request, error) {
	if m.GetByPublicIDFunc != nil {
		return m.GetByPublicIDFunc(ctx, publicID)
	}
	return nil, nil
}

func (m *mockRequestRepository) List(ctx context.Context, filter request.ListFilter) ([]*request.Request, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockRequestRepository) Count(ctx context.Context, scope request.Scope) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, scope)
	}
	return 0, nil
}

// mockHistoryRepository records appended entries.
type mockHistoryRepository struct {
	AppendFunc        func(ctx context.Context, entries ...*request.HistoryEntry) error
	ListByRequestFunc func(ctx context.Context, requestID uint, actions []vo.HistoryAction) ([]*request.HistoryEntry, error)
	appended          []*request.HistoryEntry
}

func (m *mockHistoryRepository) Append(ctx context.Context, entries ...*request.HistoryEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entries...)
	}
	m.appended = append(m.appended, entries...)
	return nil
}

func (m *mockHistoryRepository) ListByRequest(ctx context.Context, requestID uint, actions []vo.HistoryAction) ([]*request.HistoryEntry, error) {
	if m.ListByRequestFunc != nil {
		return m.ListByRequestFunc(ctx, requestID, actions)
	}
	return nil, nil
}

func (m *mockHistoryRepository) ListAudit(ctx context.Context, requestID uint) ([]*request.HistoryEntry, error) {
	return m.appended, nil
}

func (m *mockHistoryRepository) actions() []vo.HistoryAction {
	out := make([]vo.HistoryAction, len(m.appended))
	for i, h := range m.appended {
		out[i] = h.Action()
	}
	return out
}

type mockResolutionRepository struct {
	CreateFunc        func(ctx context.Context, res *request.Resolution) error
	ListByRequestFunc func(ctx context.Context, requestID uint) ([]*request.Resolution, error)
	created           []*request.Resolution
}

func (m *mockResolutionRepository) Create(ctx context.Context, res *request.Resolution) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, res)
	}
	m.created = append(m.created, res)
	return nil
}

func (m *mockResolutionRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.Resolution, error) {
	if m.ListByRequestFunc != nil {
		return m.ListByRequestFunc(ctx, requestID)
	}
	return nil, nil
}

type mockStepRepository struct {
	CreateFunc        func(ctx context.Context, s *request.Step) error
	ListByRequestFunc func(ctx context.Context, requestID uint) ([]*request.Step, error)
	created           []*request.Step
}

func (m *mockStepRepository) Create(ctx context.Context, s *request.Step) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	m.created = append(m.created, s)
	return nil
}

func (m *mockStepRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.Step, error) {
	if m.ListByRequestFunc != nil {
		return m.ListByRequestFunc(ctx, requestID)
	}
	return nil, nil
}

type mockFileRepository struct {
	CreateFunc        func(ctx context.Context, f *request.File) error
	ListByRequestFunc func(ctx context.Context, requestID uint) ([]*request.File, error)
	created           []*request.File
}

func (m *mockFileRepository) Create(ctx context.Context, f *request.File) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, f)
	}
	m.created = append(m.created, f)
	return nil
}

func (m *mockFileRepository) ListByRequest(ctx context.Context, requestID uint) ([]*request.File, error) {
	if m.ListByRequestFunc != nil {
		return m.ListByRequestFunc(ctx, requestID)
	}
	return nil, nil
}

type mockAllocator struct {
	AllocateFunc func(ctx context.Context, year int) (int64, error)
	mu           sync.Mutex
	next         int64
}

func (m *mockAllocator) Allocate(ctx context.Context, year int) (int64, error) {
	if m.AllocateFunc != nil {
		return m.AllocateFunc(ctx, year)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return m.next, nil
}

type mockCompanyRepository struct {
	CreateFunc   func(ctx context.Context, c *company.Company) error
	UpdateFunc   func(ctx context.Context, c *company.Company) error
	GetByIDFunc  func(ctx context.Context, id uint) (*company.Company, error)
	GetByINNFunc func(ctx context.Context, inn string) (*company.Company, error)
	GetNamesFunc func(ctx context.Context, ids []uint) (map[uint]string, error)
}

func (m *mockCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCompanyRepository) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCompanyRepository) GetByINN(ctx context.Context, inn string) (*company.Company, error) {
	if m.GetByINNFunc != nil {
		return m.GetByINNFunc(ctx, inn)
	}
	return nil, nil
}

func (m *mockCompanyRepository) GetNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	if m.GetNamesFunc != nil {
		return m.GetNamesFunc(ctx, ids)
	}
	return map[uint]string{}, nil
}

type mockRequesterRepository struct {
	CreateFunc         func(ctx context.Context, e *company.Employee) error
	UpdateFunc         func(ctx context.Context, e *company.Employee) error
	FindByIdentityFunc func(ctx context.Context, companyID uint, firstName, lastName, middleName string) (*company.Employee, error)
}

func (m *mockRequesterRepository) Create(ctx context.Context, e *company.Employee) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *mockRequesterRepository) Update(ctx context.Context, e *company.Employee) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return nil
}

func (m *mockRequesterRepository) FindByIdentity(ctx context.Context, companyID uint, firstName, lastName, middleName string) (*company.Employee, error) {
	if m.FindByIdentityFunc != nil {
		return m.FindByIdentityFunc(ctx, companyID, firstName, lastName, middleName)
	}
	return nil, nil
}

type mockDirectionRepository struct {
	GetByIDsFunc func(ctx context.Context, ids []uint) ([]company.Direction, error)
}

func (m *mockDirectionRepository) GetByIDs(ctx context.Context, ids []uint) ([]company.Direction, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

type mockAgencyEmployeeRepository struct {
	GetByIDFunc     func(ctx context.Context, id uint) (*agency.Employee, error)
	GetByUserIDFunc func(ctx context.Context, userID uint) (*agency.Employee, error)
	ListByRoleFunc  func(ctx context.Context, role agency.Role) ([]*agency.Employee, error)
}

func (m *mockAgencyEmployeeRepository) GetByID(ctx context.Context, id uint) (*agency.Employee, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAgencyEmployeeRepository) GetByUserID(ctx context.Context, userID uint) (*agency.Employee, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockAgencyEmployeeRepository) ListByRole(ctx context.Context, role agency.Role) ([]*agency.Employee, error) {
	if m.ListByRoleFunc != nil {
		return m.ListByRoleFunc(ctx, role)
	}
	return nil, nil
}

type mockDepartmentRepository struct {
	GetByIDFunc    func(ctx context.Context, id uint) (*agency.Department, error)
	ListActiveFunc func(ctx context.Context) ([]*agency.Department, error)
}

func (m *mockDepartmentRepository) GetByID(ctx context.Context, id uint) (*agency.Department, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDepartmentRepository) ListActive(ctx context.Context) ([]*agency.Department, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

// mockEnforcer allows every role listed in grants for the given actions.
type mockEnforcer struct {
	grants map[string][]string
	err    error
}

func (m *mockEnforcer) Enforce(role, resource, action string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, a := range m.grants[role] {
		if a == action {
			return true, nil
		}
	}
	return false, nil
}

type observedTransition struct {
	Operation string
	From      string
	To        string
}

type mockObserver struct {
	transitions []observedTransition
	noops       []observedTransition
	intakes     int
}

func (m *mockObserver) ObserveTransition(operation, from, to string) {
	m.transitions = append(m.transitions, observedTransition{operation, from, to})
}

func (m *mockObserver) ObserveNoop(operation, status string) {
	m.noops = append(m.noops, observedTransition{Operation: operation, From: status})
}

func (m *mockObserver) ObserveIntake() {
	m.intakes++
}

type mockCountCache struct {
	GetFunc     func(ctx context.Context, actor agency.Actor) (map[vo.Bucket]int64, error)
	SetFunc     func(ctx context.Context, actor agency.Actor, counts map[vo.Bucket]int64) error
	invalidated int
	stored      map[vo.Bucket]int64
}

func (m *mockCountCache) Get(ctx context.Context, actor agency.Actor) (map[vo.Bucket]int64, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor)
	}
	return nil, nil
}

func (m *mockCountCache) Set(ctx context.Context, actor agency.Actor, counts map[vo.Bucket]int64) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, actor, counts)
	}
	m.stored = counts
	return nil
}

func (m *mockCountCache) Invalidate(ctx context.Context) error {
	m.invalidated++
	return nil
}

type mockNotifier struct {
	NotifyReceiptFunc func(ctx context.Context, notice ReceiptNotice) error
	sent              []ReceiptNotice
}

func (m *mockNotifier) NotifyReceipt(ctx context.Context, notice ReceiptNotice) error {
	if m.NotifyReceiptFunc != nil {
		return m.NotifyReceiptFunc(ctx, notice)
	}
	m.sent = append(m.sent, notice)
	return nil
}

// mockTextService trims input and wraps rendered text in a paragraph.
type mockTextService struct{}

func (mockTextService) PlainText(input string) string {
	return strings.TrimSpace(input)
}

func (mockTextService) ToHTMLSanitized(markdown string) (string, error) {
	return "<p>" + markdown + "</p>", nil
}

type mockLogger struct {
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
