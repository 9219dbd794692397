package request

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/application/request/usecases"
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/interfaces/http/handlers/testutil"
	"github.com/adli-inc/adli/internal/shared/constants"
	"github.com/adli-inc/adli/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateUC struct {
	got    usecases.CreatePublicRequestCommand
	result *dto.CreatedRequestDTO
	err    error
}

func (m *mockCreateUC) Execute(_ context.Context, cmd usecases.CreatePublicRequestCommand) (*dto.CreatedRequestDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockTrackUC struct {
	got     usecases.TrackRequestQuery
	result  *dto.TrackDTO
	history []dto.PublicHistoryEntryDTO
	err     error
}

func (m *mockTrackUC) Execute(_ context.Context, q usecases.TrackRequestQuery) (*dto.TrackDTO, error) {
	m.got = q
	return m.result, m.err
}

func (m *mockTrackUC) History(_ context.Context, q usecases.PublicHistoryQuery) ([]dto.PublicHistoryEntryDTO, error) {
	m.got = q
	return m.history, m.err
}

type mockListUC struct {
	got    usecases.ListRequestsQuery
	result *usecases.ListRequestsResult
	err    error
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListRequestsQuery) (*usecases.ListRequestsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockCountsUC struct {
	result *dto.BucketCountsDTO
	err    error
}

func (m *mockCountsUC) Execute(_ context.Context, _ usecases.BucketCountsQuery) (*dto.BucketCountsDTO, error) {
	return m.result, m.err
}

type mockGetUC struct {
	got    usecases.GetRequestQuery
	result *dto.RequestDTO
	err    error
}

func (m *mockGetUC) Execute(_ context.Context, q usecases.GetRequestQuery) (*dto.RequestDTO, error) {
	m.got = q
	return m.result, m.err
}

type mockActions struct {
	RegisterFunc          func(actor agency.Actor, id uint) (*dto.TransitionResultDTO, error)
	SendForResolutionFunc func(actor agency.Actor, id uint, deputyID *uint) (*dto.TransitionResultDTO, error)
	CreateResolutionFunc  func(actor agency.Actor, id uint, in usecases.ResolutionRequest) (*dto.TransitionResultDTO, error)
	AddStepFunc           func(actor agency.Actor, id uint, text string) (*dto.TransitionResultDTO, error)
	MarkDoneFunc          func(actor agency.Actor, id uint) (*dto.TransitionResultDTO, error)
}

func (m *mockActions) Register(_ context.Context, actor agency.Actor, id uint) (*dto.TransitionResultDTO, error) {
	return m.RegisterFunc(actor, id)
}

func (m *mockActions) SendForResolution(_ context.Context, actor agency.Actor, id uint, deputyID *uint) (*dto.TransitionResultDTO, error) {
	return m.SendForResolutionFunc(actor, id, deputyID)
}

func (m *mockActions) CreateResolution(_ context.Context, actor agency.Actor, id uint, in usecases.ResolutionRequest) (*dto.TransitionResultDTO, error) {
	return m.CreateResolutionFunc(actor, id, in)
}

func (m *mockActions) AddStep(_ context.Context, actor agency.Actor, id uint, text string) (*dto.TransitionResultDTO, error) {
	return m.AddStepFunc(actor, id, text)
}

func (m *mockActions) MarkDone(_ context.Context, actor agency.Actor, id uint) (*dto.TransitionResultDTO, error) {
	return m.MarkDoneFunc(actor, id)
}

// =====================================================================
// Test helpers
// =====================================================================

var chancellor = agency.Actor{UserID: 7, Role: agency.RoleChancellery, EmployeeID: 3}

func newPanelHandler(list *mockListUC, counts *mockCountsUC, get *mockGetUC, actions *mockActions) *PanelRequestHandler {
	return NewPanelRequestHandler(list, counts, get, actions, testutil.NewMockLogger())
}

func applied(id uint, op, from, to string) *dto.TransitionResultDTO {
	return &dto.TransitionResultDTO{RequestID: id, PublicID: "2026-000001", Operation: op, Applied: true, FromStatus: from, Status: to}
}

func parse(t *testing.T, w interface{ Bytes() []byte }) testutil.APIResponse {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(w.Bytes(), &resp))
	return resp
}

// =====================================================================
// Public portal
// =====================================================================

func TestPublicRequestHandler_CreateRequest_Success(t *testing.T) {
	uc := &mockCreateUC{result: &dto.CreatedRequestDTO{ID: 1, PublicID: "2026-000001", Status: "new", CreatedAt: time.Now().UTC()}}
	handler := NewPublicRequestHandler(uc, &mockTrackUC{}, &mockTrackUC{}, testutil.NewMockLogger())

	body := CreatePublicRequestRequest{
		INN:          "301234567",
		CompanyName:  "Agro LLC",
		FirstName:    "Aziz",
		LastName:     "Karimov",
		Description:  "Need a permit",
		DirectionIDs: []uint{2},
		Attachments:  []AttachmentRequest{{Name: "act.pdf", Size: 1024, StorageKey: "uploads/act.pdf"}},
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/public/requests", body)

	handler.CreateRequest(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parse(t, w.Body)
	assert.True(t, resp.Success)

	var created dto.CreatedRequestDTO
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "2026-000001", created.PublicID)

	assert.Equal(t, "301234567", uc.got.CompanyINN)
	require.Len(t, uc.got.Attachments, 1)
	assert.Equal(t, "uploads/act.pdf", uc.got.Attachments[0].StorageKey)
}

func TestPublicRequestHandler_CreateRequest_MalformedJSON(t *testing.T) {
	handler := NewPublicRequestHandler(&mockCreateUC{}, &mockTrackUC{}, &mockTrackUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/public/requests", "not an object")

	handler.CreateRequest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, parse(t, w.Body).Success)
}

func TestPublicRequestHandler_CreateRequest_UseCaseValidationError(t *testing.T) {
	uc := &mockCreateUC{err: errors.NewValidationError("Validation failed", "inn is required")}
	handler := NewPublicRequestHandler(uc, &mockTrackUC{}, &mockTrackUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/public/requests", CreatePublicRequestRequest{})

	handler.CreateRequest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parse(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "inn is required", resp.Error.Details)
}

func TestPublicRequestHandler_TrackRequest_UsesLanguage(t *testing.T) {
	track := &mockTrackUC{result: &dto.TrackDTO{PublicID: "2026-000001", Status: "registered", StatusLabel: "Registered"}}
	handler := NewPublicRequestHandler(&mockCreateUC{}, track, track, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/public/requests/track", TrackRequestRequest{INN: "301234567", PublicID: "2026-000001"})
	c.Set(constants.ContextKeyLanguage, language.English)

	handler.TrackRequest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, language.English, track.got.Language)
	assert.Equal(t, "2026-000001", track.got.PublicID)
}

func TestPublicRequestHandler_TrackRequest_MissingFields(t *testing.T) {
	handler := NewPublicRequestHandler(&mockCreateUC{}, &mockTrackUC{}, &mockTrackUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/public/requests/track", map[string]string{"inn": "301234567"})

	handler.TrackRequest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicRequestHandler_TrackRequest_NotFound(t *testing.T) {
	track := &mockTrackUC{err: errors.NewNotFoundError(constants.ErrMsgRequestNotFound)}
	handler := NewPublicRequestHandler(&mockCreateUC{}, track, track, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/public/requests/track", TrackRequestRequest{INN: "999999999", PublicID: "2026-000001"})

	handler.TrackRequest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicRequestHandler_GetHistory(t *testing.T) {
	track := &mockTrackUC{history: []dto.PublicHistoryEntryDTO{{Action: "created", ActionLabel: "Обращение создано"}}}
	handler := NewPublicRequestHandler(&mockCreateUC{}, track, track, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/public/requests/2026-000001/history", nil)
	testutil.SetURLParam(c, "public_id", "2026-000001")
	testutil.SetQueryParams(c, map[string]string{"inn": "301234567"})

	handler.GetHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "301234567", track.got.INN)
	assert.Equal(t, "2026-000001", track.got.PublicID)

	var entries []dto.PublicHistoryEntryDTO
	require.NoError(t, json.Unmarshal(parse(t, w.Body).Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "created", entries[0].Action)
}

// =====================================================================
// Panel
// =====================================================================

func TestPanelRequestHandler_ListRequests_PassesFilters(t *testing.T) {
	list := &mockListUC{result: &usecases.ListRequestsResult{
		Bucket:   "inbox",
		Items:    []dto.RequestListItemDTO{{ID: 1, PublicID: "2026-000001"}},
		Total:    41,
		Page:     2,
		PageSize: 20,
	}}
	handler := newPanelHandler(list, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/panel/requests", nil)
	testutil.SetActorContext(c, chancellor)
	testutil.SetQueryParams(c, map[string]string{"bucket": "inbox", "q": " agro ", "overdue": "1", "page": "2"})

	handler.ListRequests(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chancellor, list.got.Actor)
	assert.Equal(t, "inbox", list.got.Bucket)
	assert.Equal(t, "agro", list.got.Query)
	assert.True(t, list.got.Overdue)
	assert.Equal(t, 2, list.got.Page)

	var data testutil.ListData
	require.NoError(t, json.Unmarshal(parse(t, w.Body).Data, &data))
	assert.Equal(t, int64(41), data.Total)
	assert.Equal(t, 3, data.TotalPages)
}

func TestPanelRequestHandler_ListRequests_NotAuthenticated(t *testing.T) {
	handler := newPanelHandler(&mockListUC{}, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/panel/requests", nil)

	handler.ListRequests(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPanelRequestHandler_GetCounts(t *testing.T) {
	counts := &mockCountsUC{result: &dto.BucketCountsDTO{Inbox: 2, Active: 3, Done: 1, All: 6}}
	handler := newPanelHandler(nil, counts, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/panel/requests/counts", nil)
	testutil.SetActorContext(c, chancellor)

	handler.GetCounts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got dto.BucketCountsDTO
	require.NoError(t, json.Unmarshal(parse(t, w.Body).Data, &got))
	assert.Equal(t, int64(6), got.All)
}

func TestPanelRequestHandler_GetRequest_InvalidID(t *testing.T) {
	handler := newPanelHandler(nil, nil, &mockGetUC{}, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/panel/requests/abc", nil)
	testutil.SetActorContext(c, chancellor)
	testutil.SetURLParam(c, "id", "abc")

	handler.GetRequest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPanelRequestHandler_GetRequest_HiddenIsNotFound(t *testing.T) {
	get := &mockGetUC{err: errors.NewNotFoundError(constants.ErrMsgRequestNotFound)}
	handler := newPanelHandler(nil, nil, get, nil)

	executor := agency.Actor{UserID: 9, Role: agency.RoleExecutor, EmployeeID: 4}
	c, w := testutil.NewTestContext(http.MethodGet, "/panel/requests/5", nil)
	testutil.SetActorContext(c, executor)
	testutil.SetURLParam(c, "id", "5")

	handler.GetRequest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, uint(5), get.got.RequestID)
	assert.Equal(t, executor, get.got.Actor)
}

func TestPanelRequestHandler_Register_Applied(t *testing.T) {
	actions := &mockActions{RegisterFunc: func(actor agency.Actor, id uint) (*dto.TransitionResultDTO, error) {
		assert.Equal(t, chancellor, actor)
		return applied(id, "register", "new", "registered"), nil
	}}
	handler := newPanelHandler(nil, nil, nil, actions)

	c, w := testutil.NewTestContext(http.MethodPost, "/panel/requests/1/register", nil)
	testutil.SetActorContext(c, chancellor)
	testutil.SetURLParam(c, "id", "1")

	handler.Register(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parse(t, w.Body)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Warning)
}

func TestPanelRequestHandler_Register_NotAppliedCarriesWarning(t *testing.T) {
	actions := &mockActions{RegisterFunc: func(_ agency.Actor, id uint) (*dto.TransitionResultDTO, error) {
		return &dto.TransitionResultDTO{RequestID: id, Operation: "register", Warning: "only new requests can be registered", FromStatus: "done", Status: "done"}, nil
	}}
	handler := newPanelHandler(nil, nil, nil, actions)

	c, w := testutil.NewTestContext(http.MethodPost, "/panel/requests/1/register", nil)
	testutil.SetActorContext(c, chancellor)
	testutil.SetURLParam(c, "id", "1")

	handler.Register(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parse(t, w.Body)
	assert.True(t, resp.Success)
	assert.Equal(t, "only new requests can be registered", resp.Warning)
}

func TestPanelRequestHandler_SendForResolution_PassesDeputy(t *testing.T) {
	var gotDeputy *uint
	actions := &mockActions{SendForResolutionFunc: func(_ agency.Actor, id uint, deputyID *uint) (*dto.TransitionResultDTO, error) {
		gotDeputy = deputyID
		return applied(id, "send_for_resolution", "registered", "sent_for_resolution"), nil
	}}
	handler := newPanelHandler(nil, nil, nil, actions)

	c, w := testutil.NewTestContext(http.MethodPost, "/panel/requests/1/send-for-resolution", map[string]uint{"deputy_assistant_id": 12})
	testutil.SetActorContext(c, chancellor)
	testutil.SetURLParam(c, "id", "1")

	handler.SendForResolution(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotDeputy)
	assert.Equal(t, uint(12), *gotDeputy)
}

func TestPanelRequestHandler_SendForResolution_Forbidden(t *testing.T) {
	actions := &mockActions{SendForResolutionFunc: func(_ agency.Actor, _ uint, _ *uint) (*dto.TransitionResultDTO, error) {
		return nil, errors.NewForbiddenError("insufficient permissions")
	}}
	handler := newPanelHandler(nil, nil, nil, actions)

	c, w := testutil.NewTestContext(http.MethodPost, "/panel/requests/1/send-for-resolution", map[string]uint{"deputy_assistant_id": 12})
	testutil.SetActorContext(c, agency.Actor{UserID: 9, Role: agency.RoleExecutor, EmployeeID: 4})
	testutil.SetURLParam(c, "id", "1")

	handler.SendForResolution(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPanelRequestHandler_CreateResolution_ParsesDueDate(t *testing.T) {
	var got usecases.ResolutionRequest
	actions := &mockActions{CreateResolutionFunc: func(_ agency.Actor, id uint, in usecases.ResolutionRequest) (*dto.TransitionResultDTO, error) {
		got = in
		return applied(id, "create_resolution", "sent_for_resolution", "assigned"), nil
	}}
	handler := newPanelHandler(nil, nil, nil, actions)

	dept := uint(4)
	body := CreateResolutionRequest{Text: "Review within a week", TargetDepartmentID: &dept, DueDate: "2026-03-20"}
	c, w := testutil.NewTestContext(http.MethodPost, "/panel/requests/1/resolutions", body)
	testutil.SetActorContext(c, agency.Actor{UserID: 11, Role: agency.RoleDeputyAssistant, EmployeeID: 12})
	testutil.SetURLParam(c, "id", "1")

	handler.CreateResolution(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Review within a week", got.Text)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), *got.DueDate)
	assert.Nil(t, got.TargetEmployeeID)
}

func TestPanelRequestHandler_CreateResolution_InvalidDueDate(t *testing.T) {
	handler := newPanelHandler(nil, nil, nil, &mockActions{})

	body := CreateResolutionRequest{Text: "Review", DueDate: "20.03.2026"}
	c, w := testutil.NewTestContext(http.MethodPost, "/panel/requests/1/resolutions", body)
	testutil.SetActorContext(c, agency.Actor{UserID: 11, Role: agency.RoleDeputyAssistant, EmployeeID: 12})
	testutil.SetURLParam(c, "id", "1")

	handler.CreateResolution(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPanelRequestHandler_AddStep_RequiresText(t *testing.T) {
	handler := newPanelHandler(nil, nil, nil, &mockActions{})

	c, w := testutil.NewTestContext(http.MethodPost, "/panel/requests/1/steps", map[string]string{})
	testutil.SetActorContext(c, agency.Actor{UserID: 9, Role: agency.RoleExecutor, EmployeeID: 4})
	testutil.SetURLParam(c, "id", "1")

	handler.AddStep(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPanelRequestHandler_AddStep_And_MarkDone(t *testing.T) {
	executor := agency.Actor{UserID: 9, Role: agency.RoleExecutor, EmployeeID: 4}
	var stepText string
	actions := &mockActions{
		AddStepFunc: func(_ agency.Actor, id uint, text string) (*dto.TransitionResultDTO, error) {
			stepText = text
			return applied(id, "add_step", "assigned", "in_progress"), nil
		},
		MarkDoneFunc: func(_ agency.Actor, id uint) (*dto.TransitionResultDTO, error) {
			return applied(id, "mark_done", "in_progress", "done"), nil
		},
	}
	handler := newPanelHandler(nil, nil, nil, actions)

	c, w := testutil.NewTestContext(http.MethodPost, "/panel/requests/1/steps", AddStepRequest{Text: "Called the company"})
	testutil.SetActorContext(c, executor)
	testutil.SetURLParam(c, "id", "1")
	handler.AddStep(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Called the company", stepText)

	c, w = testutil.NewTestContext(http.MethodPost, "/panel/requests/1/done", nil)
	testutil.SetActorContext(c, executor)
	testutil.SetURLParam(c, "id", "1")
	handler.MarkDone(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var result dto.TransitionResultDTO
	require.NoError(t, json.Unmarshal(parse(t, w.Body).Data, &result))
	assert.Equal(t, "done", result.Status)
}
