package request

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adli-inc/adli/internal/application/request/dto"
	"github.com/adli-inc/adli/internal/application/request/usecases"
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/interfaces/http/middleware"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/logger"
	"github.com/adli-inc/adli/internal/shared/utils"
)

// PanelRequestHandler serves the agency staff panel. Every route runs
// behind AuthMiddleware.RequireAuth.
type PanelRequestHandler struct {
	listUC   usecases.ListRequestsExecutor
	countsUC usecases.BucketCountsExecutor
	getUC    usecases.GetRequestExecutor
	actions  ActionService
	logger   logger.Interface
}

func NewPanelRequestHandler(
	listUC usecases.ListRequestsExecutor,
	countsUC usecases.BucketCountsExecutor,
	getUC usecases.GetRequestExecutor,
	actions ActionService,
	logger logger.Interface,
) *PanelRequestHandler {
	return &PanelRequestHandler{
		listUC:   listUC,
		countsUC: countsUC,
		getUC:    getUC,
		actions:  actions,
		logger:   logger,
	}
}

// ListRequests handles GET /panel/requests
// @Summary Worklist
// @Tags Panel
// @Produce json
// @Security Bearer
// @Param bucket query string false "inbox, active, done or all"
// @Param q query string false "Search by public ID, company or description"
// @Param status query string false "Status filter"
// @Param overdue query bool false "Only overdue requests"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /panel/requests [get]
func (h *PanelRequestHandler) ListRequests(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	req := parseListRequestsRequest(c)
	query := req.ToQuery(actor)
	query.Language = middleware.LanguageFrom(c)

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetCounts handles GET /panel/requests/counts
// @Summary Bucket counters
// @Tags Panel
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=dto.BucketCountsDTO}
// @Router /panel/requests/counts [get]
func (h *PanelRequestHandler) GetCounts(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	result, err := h.countsUC.Execute(c.Request.Context(), usecases.BucketCountsQuery{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetRequest handles GET /panel/requests/:id
// @Summary Request detail
// @Tags Panel
// @Produce json
// @Security Bearer
// @Param id path int true "Request ID"
// @Success 200 {object} utils.APIResponse{data=dto.RequestDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /panel/requests/{id} [get]
func (h *PanelRequestHandler) GetRequest(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetRequestQuery{
		Actor:     actor,
		RequestID: requestID,
		Language:  middleware.LanguageFrom(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Register handles POST /panel/requests/:id/register
// @Summary Register a new request
// @Tags Panel
// @Produce json
// @Security Bearer
// @Param id path int true "Request ID"
// @Success 200 {object} utils.APIResponse{data=dto.TransitionResultDTO}
// @Failure 403 {object} utils.APIResponse
// @Router /panel/requests/{id}/register [post]
func (h *PanelRequestHandler) Register(c *gin.Context) {
	actor, requestID, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.actions.Register(c.Request.Context(), actor, requestID)
	h.respondTransition(c, result, err)
}

// SendForResolution handles POST /panel/requests/:id/send-for-resolution
// @Summary Send a request to a deputy assistant
// @Tags Panel
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Request ID"
// @Param request body SendForResolutionRequest true "Deputy assistant"
// @Success 200 {object} utils.APIResponse{data=dto.TransitionResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /panel/requests/{id}/send-for-resolution [post]
func (h *PanelRequestHandler) SendForResolution(c *gin.Context) {
	actor, requestID, ok := h.target(c)
	if !ok {
		return
	}

	var req SendForResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.actions.SendForResolution(c.Request.Context(), actor, requestID, req.DeputyAssistantID)
	h.respondTransition(c, result, err)
}

// CreateResolution handles POST /panel/requests/:id/resolutions
// @Summary Write a resolution and assign the request
// @Tags Panel
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Request ID"
// @Param request body CreateResolutionRequest true "Resolution"
// @Success 200 {object} utils.APIResponse{data=dto.TransitionResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /panel/requests/{id}/resolutions [post]
func (h *PanelRequestHandler) CreateResolution(c *gin.Context) {
	actor, requestID, ok := h.target(c)
	if !ok {
		return
	}

	var req CreateResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}
	in, err := req.ToResolution()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.actions.CreateResolution(c.Request.Context(), actor, requestID, in)
	h.respondTransition(c, result, err)
}

// AddStep handles POST /panel/requests/:id/steps
// @Summary Record an execution step
// @Tags Panel
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Request ID"
// @Param request body AddStepRequest true "Step"
// @Success 200 {object} utils.APIResponse{data=dto.TransitionResultDTO}
// @Router /panel/requests/{id}/steps [post]
func (h *PanelRequestHandler) AddStep(c *gin.Context) {
	actor, requestID, ok := h.target(c)
	if !ok {
		return
	}

	var req AddStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.actions.AddStep(c.Request.Context(), actor, requestID, req.Text)
	h.respondTransition(c, result, err)
}

// MarkDone handles POST /panel/requests/:id/done
// @Summary Close a request
// @Tags Panel
// @Produce json
// @Security Bearer
// @Param id path int true "Request ID"
// @Success 200 {object} utils.APIResponse{data=dto.TransitionResultDTO}
// @Router /panel/requests/{id}/done [post]
func (h *PanelRequestHandler) MarkDone(c *gin.Context) {
	actor, requestID, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.actions.MarkDone(c.Request.Context(), actor, requestID)
	h.respondTransition(c, result, err)
}

func (h *PanelRequestHandler) actor(c *gin.Context) (agency.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return agency.Actor{}, false
	}
	return actor, true
}

func (h *PanelRequestHandler) target(c *gin.Context) (agency.Actor, uint, bool) {
	actor, ok := h.actor(c)
	if !ok {
		return agency.Actor{}, 0, false
	}
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return agency.Actor{}, 0, false
	}
	return actor, requestID, true
}

// respondTransition answers 200 either way; an unapplied action carries
// its reason in the warning field.
func (h *PanelRequestHandler) respondTransition(c *gin.Context, result *dto.TransitionResultDTO, err error) {
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !result.Applied {
		h.logger.Infow("lifecycle action not applied",
			"request_id", result.RequestID,
			"operation", result.Operation,
			"status", result.Status,
			"warning", result.Warning)
		utils.WarningResponse(c, result.Warning, result)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
