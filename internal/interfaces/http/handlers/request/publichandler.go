package request

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adli-inc/adli/internal/application/request/usecases"
	"github.com/adli-inc/adli/internal/interfaces/http/middleware"
	"github.com/adli-inc/adli/internal/shared/logger"
	"github.com/adli-inc/adli/internal/shared/utils"
)

// PublicRequestHandler serves the anonymous company portal.
type PublicRequestHandler struct {
	createUC  usecases.CreatePublicRequestExecutor
	trackUC   usecases.TrackRequestExecutor
	historyUC usecases.PublicHistoryExecutor
	logger    logger.Interface
}

func NewPublicRequestHandler(
	createUC usecases.CreatePublicRequestExecutor,
	trackUC usecases.TrackRequestExecutor,
	historyUC usecases.PublicHistoryExecutor,
	logger logger.Interface,
) *PublicRequestHandler {
	return &PublicRequestHandler{
		createUC:  createUC,
		trackUC:   trackUC,
		historyUC: historyUC,
		logger:    logger,
	}
}

// CreateRequest handles POST /public/requests
// @Summary Submit a request
// @Description Public intake form. Creates the company and requester when unknown.
// @Tags Public
// @Accept json
// @Produce json
// @Param request body CreatePublicRequestRequest true "Intake form"
// @Success 201 {object} utils.APIResponse{data=dto.CreatedRequestDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /public/requests [post]
func (h *PublicRequestHandler) CreateRequest(c *gin.Context) {
	var req CreatePublicRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for public intake", "error", err)
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Request submitted")
}

// TrackRequest handles POST /public/requests/track
// @Summary Track a request
// @Tags Public
// @Accept json
// @Produce json
// @Param request body TrackRequestRequest true "INN and public ID"
// @Param lang query string false "Label language (ru, en, uz)"
// @Success 200 {object} utils.APIResponse{data=dto.TrackDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /public/requests/track [post]
func (h *PublicRequestHandler) TrackRequest(c *gin.Context) {
	var req TrackRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.ValidationError(err))
		return
	}

	result, err := h.trackUC.Execute(c.Request.Context(), usecases.TrackRequestQuery{
		INN:      req.INN,
		PublicID: req.PublicID,
		Language: middleware.LanguageFrom(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetHistory handles GET /public/requests/:public_id/history?inn=
// @Summary Public history of a request
// @Tags Public
// @Produce json
// @Param public_id path string true "Public ID, e.g. 2026-000001"
// @Param inn query string true "Company INN"
// @Success 200 {object} utils.APIResponse{data=[]dto.PublicHistoryEntryDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /public/requests/{public_id}/history [get]
func (h *PublicRequestHandler) GetHistory(c *gin.Context) {
	result, err := h.historyUC.History(c.Request.Context(), usecases.PublicHistoryQuery{
		INN:      c.Query("inn"),
		PublicID: c.Param("public_id"),
		Language: middleware.LanguageFrom(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
