package constants

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_USER  = "USER"
)

const (
	DATA_INPUT_IS_NOT_NUMBER = "Path parameter must be a number"
	INVALID_INPUT            = "Invalid input"
	MISSING_TOKEN            = "Missing token"
	INVALID_TOKEN            = "Invalid token"
	NOT_PERMISSION           = "You do not have permission to perform this action"
	LOGIN_FAILED             = "Email or password is incorrect"
	ACCOUNT_DISABLED         = "Account is disabled"
	RESOURCE_NOT_FOUND       = "Resource not found"
	STATE_CONFLICT           = "Request conflicts with the current state"
	INTERNAL_ERROR           = "Internal server error"
)

const (
	LOG_HTTP      = "HTTP"
	LOG_DATABASE  = "DATABASE"
	LOG_SWEEP     = "SWEEP"
	LOG_SCHEDULE  = "SCHEDULE"
	LOG_LIFECYCLE = "LIFECYCLE"
	LOG_SEAT      = "SEAT"
	LOG_BOOKING   = "BOOKING"
	LOG_EVENT     = "EVENT"
	LOG_AUTH      = "AUTH"
	LOG_SYSTEM    = "SYSTEM"
)
