package constant

const (
	// ContextKeyRequestID is the fiber.Ctx locals key under which the
	// request id generated by the logger chain is stored.
	ContextKeyRequestID = "requestid"

	// RequestIDHeader is the response header carrying the request id.
	RequestIDHeader = "X-Componentry-Request-ID"
)

const (
	// ComponentCollection is the mongo collection holding component records.
	ComponentCollection = "components"
)
