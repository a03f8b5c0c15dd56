package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"
)

// Content types
const (
	ContentTypeSVG  = "image/svg+xml; charset=utf-8"
	ContentTypeJSON = "application/json"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain      = "domain"
	CtxNormalize   = "Normalize"
	CtxBuild       = "Build"
	CtxBuildToPath = "BuildToPath"
	CtxRegister    = "Register"
	CtxLookup      = "Lookup"

	// Infrastructure context names
	CtxQREncode      = "QREncode"
	CtxRender        = "Render"
	CtxDB            = "db"
	CtxUpsert        = "Upsert"
	CtxFindByEPRELID = "FindByEPRELID"
	CtxClose         = "Close"
	CtxAPI           = "api"

	// General context names
	CtxRouter        = "Router"
	CtxMain          = "Main"
	CtxCLI           = "CLI"
	CtxRenderLabel   = "RenderLabel"
	CtxRegisterLabel = "RegisterLabel"
	CtxRenderStored  = "RenderStoredLabel"
)

// Data field keys
const (
	// Label data fields
	DataService     = "service"
	DataEPRELID     = "eprel_id"
	DataEPRELLink   = "eprel_link"
	DataSupplier    = "supplier"
	DataNoiseLevel  = "noise_level"
	DataIconCount   = "icon_count"
	DataEmbedFonts  = "embed_fonts"
	DataIncludeLink = "include_link"
	DataBytes       = "bytes"
	DataModules     = "modules"
	DataCacheHit    = "cache_hit"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrLabelNotFound = "label not found"
	ErrQRTooLong     = "link is too long to encode as a QR code"
)

// Error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIInvalidParam   = "API003"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
	ErrCodeAppRendererInit   = "APP004"
	ErrCodeCLIUsage          = "CLI001"
)

// Error types
const (
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
	ErrTypeCLI = "cli"
)

// API routes
const (
	RouteRenderLabel   = "/api/labels/render"
	RouteRegisterLabel = "/api/labels"
	RouteStoredLabel   = "/labels/{eprelID}"
	RouteHealthcheck   = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting  = "Application starting"
	MsgFailedToInitDB       = "Failed to initialize database"
	MsgFailedToInitRenderer = "Failed to initialize label renderer"
	MsgServerStarting       = "Server starting"
	MsgServerFailedToStart  = "Server failed to start"
	MsgServerShuttingDown   = "Server shutting down"
	MsgServerShutdownError  = "Error during server shutdown"
	MsgServerStopped        = "Server stopped"
	MsgRequestReceived      = "Request received"
	MsgRequestCompleted     = "Request completed"
	MsgSettingUpRoutes      = "Setting up API routes"
	MsgHealthcheckRequest   = "Handling healthcheck request"
	MsgHealthy              = "Healthy"
)

// Cache Namespace
const (
	LabelNamespace = "LABEL"
)
