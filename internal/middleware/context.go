package middleware

// Context keys used to pass request metadata between middleware.
const (
	ContextKeyRequestID = "request_id"
)
