package constants

// Context Keys are used for storing and retrieving values from request contexts.
const (
	UserIDContextKey    = "user_id"
	UsernameContextKey  = "username"
	SessionIDContextKey = "session_id"
	RequestIDContextKey = "request_id"
)

// Rate limit categories. Authenticated endpoints get APIRateMultiplier times
// the configured rate; login and registration get the configured rate.
const (
	RateCategoryAuth  = "auth"
	RateCategoryAPI   = "api"
	APIRateMultiplier = 4
)
