package constants

// Public routes.
const (
	HealthPath   = "/health"
	RegisterPath = "/register"
	LoginPath    = "/login"
)

// Authenticated routes.
const (
	LogoutPath         = "/logout"
	CreateBotPath      = "/create_bot"
	BotsPath           = "/bots"
	DatasetPreviewPath = "/dataset_preview/{bot_id}"
	AnnotatePath       = "/annotate"
	SaveAnnotationPath = "/save_annotation"
	AnnotationsPath    = "/annotations"
	TrainBotPath       = "/train_bot"
	TestBotPath        = "/test_bot"
)

// URL and query parameters.
const (
	ParamBotID         = "bot_id"
	QueryParamUsername = "username"
	QueryParamBotID    = "bot_id"
	QueryParamAll      = "all"
	FormFieldFile      = "file"
)
