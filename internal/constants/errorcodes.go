package constants

// User-Facing Error Messages define standardized messages that can be safely presented to users.
const (
	// MsgAuthRequired indicates that the user must authenticate to access the resource.
	MsgAuthRequired = "Authentication required"
	// MsgInvalidPassword indicates that login credentials are incorrect.
	MsgInvalidPassword = "Invalid username or password"
	// MsgAccessDenied indicates that the user lacks permission for the requested action.
	MsgAccessDenied = "You don't have permission to access this resource"
	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"
	// MsgInvalidToken indicates that the provided token is invalid.
	MsgInvalidToken = "Invalid token"
	// MsgTokenExpired indicates that the user's authentication token has expired.
	MsgTokenExpired = "Authentication token has expired"
	// MsgResourceNotFound is the generic not-found message.
	MsgResourceNotFound = "The requested resource could not be found"
	// MsgMethodNotAllowed is returned for unsupported HTTP methods.
	MsgMethodNotAllowed = "Method not allowed"
	// MsgTooManyRequests is returned when a client exceeds its rate limit.
	MsgTooManyRequests = "Too many requests, please slow down"
)

// Annotation workflow messages.
const (
	MsgUsernameExists        = "Username already exists"
	MsgDatasetNotFoundForBot = "Dataset not found for this bot"
	MsgDatasetFileMissing    = "Dataset file missing"
	MsgDatasetNotFound       = "Dataset not found"
	MsgFileNotFound          = "File not found"
	MsgCouldNotReadCSV       = "Could not read CSV, check file format or encoding."
	MsgEmptyDataset          = "Empty dataset file uploaded"
	MsgMissingTextColumn     = "Dataset must contain 'question' or 'sentence' column"
	MsgAnnotationFailed      = "Error during annotation"
	MsgBotNotTrained         = "Bot has not been trained yet"
	MsgNoTrainingExamples    = "Dataset has no usable questions"
)

// Success messages.
const (
	MsgUserRegistered  = "User registered successfully"
	MsgBotCreated      = "Bot created successfully"
	MsgAnnotationSaved = "Annotation saved successfully"
	MsgLoggedOut       = "Successfully logged out"
	MsgLoggedOutAll    = "All sessions revoked"
)
