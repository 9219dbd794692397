package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 200

	// HTTP Headers
	HeaderAuthorization  = "Authorization"
	HeaderXRequestID     = "X-Request-ID"
	HeaderAcceptLanguage = "Accept-Language"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
	ContextKeyActor     = "actor"
	ContextKeyLanguage  = "language"

	// Database table names
	TableRequests           = "requests"
	TableRequestCounters    = "request_counters"
	TableRequestResolutions = "request_resolutions"
	TableRequestSteps       = "request_steps"
	TableRequestFiles       = "request_files"
	TableRequestHistory     = "request_history"
	TableRequestDirections  = "request_directions"
	TableCompanies          = "companies"
	TableCompanyEmployees   = "company_employees"
	TableDirections         = "directions"
	TableDepartments        = "departments"
	TableAgencyEmployees    = "agency_employees"
	TableAgencyEmployeeRole = "agency_employee_roles"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgRequestNotFound     = "Request not found"
)
