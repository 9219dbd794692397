package request

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adli-inc/adli/internal/application/request/usecases"
	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/shared/biztime"
	"github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/utils"
)

type AttachmentRequest struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	StorageKey string `json:"storage_key"`
}

// CreatePublicRequestRequest is the public intake form. Field rules are
// enforced by the use case.
type CreatePublicRequestRequest struct {
	INN          string              `json:"inn"`
	CompanyName  string              `json:"company_name"`
	FirstName    string              `json:"first_name"`
	LastName     string              `json:"last_name"`
	MiddleName   string              `json:"middle_name"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email"`
	Description  string              `json:"description"`
	DirectionIDs []uint              `json:"direction_ids"`
	Attachments  []AttachmentRequest `json:"attachments"`
}

func (r *CreatePublicRequestRequest) ToCommand() usecases.CreatePublicRequestCommand {
	attachments := make([]usecases.AttachmentInput, len(r.Attachments))
	for i, a := range r.Attachments {
		attachments[i] = usecases.AttachmentInput{
			Name:       a.Name,
			Size:       a.Size,
			StorageKey: a.StorageKey,
		}
	}
	return usecases.CreatePublicRequestCommand{
		CompanyINN:   r.INN,
		CompanyName:  r.CompanyName,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		MiddleName:   r.MiddleName,
		Phone:        r.Phone,
		Email:        r.Email,
		Description:  r.Description,
		DirectionIDs: r.DirectionIDs,
		Attachments:  attachments,
	}
}

type TrackRequestRequest struct {
	INN      string `json:"inn" binding:"required"`
	PublicID string `json:"public_id" binding:"required"`
}

type SendForResolutionRequest struct {
	DeputyAssistantID *uint `json:"deputy_assistant_id"`
}

type CreateResolutionRequest struct {
	Text               string `json:"text"`
	TargetDepartmentID *uint  `json:"target_department_id"`
	TargetEmployeeID   *uint  `json:"target_employee_id"`
	DueDate            string `json:"due_date"`
}

func (r *CreateResolutionRequest) ToResolution() (usecases.ResolutionRequest, error) {
	out := usecases.ResolutionRequest{
		Text:               r.Text,
		TargetDepartmentID: r.TargetDepartmentID,
		TargetEmployeeID:   r.TargetEmployeeID,
	}
	if due := strings.TrimSpace(r.DueDate); due != "" {
		d, err := biztime.ParseDate(due)
		if err != nil {
			return out, errors.NewValidationError("due_date must have the form YYYY-MM-DD")
		}
		out.DueDate = &d
	}
	return out, nil
}

type AddStepRequest struct {
	Text string `json:"text" binding:"required"`
}

type ListRequestsRequest struct {
	Bucket   string
	Query    string
	Status   string
	Overdue  bool
	Page     int
	PageSize int
}

func (r *ListRequestsRequest) ToQuery(actor agency.Actor) usecases.ListRequestsQuery {
	return usecases.ListRequestsQuery{
		Actor:    actor,
		Bucket:   r.Bucket,
		Query:    r.Query,
		Status:   r.Status,
		Overdue:  r.Overdue,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

func parseListRequestsRequest(c *gin.Context) *ListRequestsRequest {
	p := utils.ParsePagination(c)
	overdue := c.Query("overdue")
	return &ListRequestsRequest{
		Bucket:   c.Query("bucket"),
		Query:    strings.TrimSpace(c.Query("q")),
		Status:   c.Query("status"),
		Overdue:  overdue == "1" || overdue == "true",
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}

func parseRequestID(c *gin.Context) (uint, error) {
	id, ok := utils.ParseUintParam(c, "id")
	if !ok {
		return 0, errors.NewValidationError("Invalid request ID")
	}
	return id, nil
}
