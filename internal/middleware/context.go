package middleware

// Context keys used to store request and session metadata.
const (
	ContextKeyOperatorEmail = "operator_email"
	ContextKeyRequestID     = "request_id"
)
