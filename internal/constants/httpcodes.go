package constants

// Response Status Indicators.
const (
	ResponseSuccess = true
	ResponseFailure = false
)

// Error codes reported in the response envelope.
const (
	CodeBadRequest         = "bad_request"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeConflict           = "conflict"
	CodeInternalError      = "internal_error"
	CodeValidationError    = "validation_error"
	CodeInvalidCredentials = "invalid_credentials"
	CodeTokenExpired       = "token_expired"
	CodeTokenInvalid       = "token_invalid"
	CodeTooManyRequests    = "too_many_requests"
)

// HTTP Headers.
const (
	HeaderContentType           = "Content-Type"
	HeaderAuthorization         = "Authorization"
	HeaderXRequestID            = "X-Request-ID"
	HeaderRetryAfter            = "Retry-After"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
	HeaderAccessControlOrigin   = "Access-Control-Allow-Origin"
	HeaderAccessControlMethods  = "Access-Control-Allow-Methods"
	HeaderAccessControlHeaders  = "Access-Control-Allow-Headers"
	HeaderAccessControlCreds    = "Access-Control-Allow-Credentials"
	HeaderAccessControlMaxAge   = "Access-Control-Max-Age"
	HeaderOrigin                = "Origin"
	HeaderVary                  = "Vary"
	HeaderXForwardedFor         = "X-Forwarded-For"
	HeaderXRealIP               = "X-Real-IP"
)

// CORS preflight answers.
const (
	CORSAllowedMethods = "GET, POST, OPTIONS"
	CORSAllowedHeaders = "Accept, Authorization, Content-Type, X-Request-ID"
	CORSMaxAge         = "300"
)

// Content Types.
const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// Security header values.
const (
	FrameOptionsDeny           = "DENY"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'"
)
