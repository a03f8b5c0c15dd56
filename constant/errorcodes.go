package constant

// Domain service error codes
const (
	// Label normalizer - Validation errors (1xx)
	ErrCodeInvalidNoiseLevel = "LBL101"
	ErrCodeMissingFields     = "LBL102"
	ErrCodeMalformedInput    = "LBL103"

	// QR encoder errors (2xx)
	ErrCodeQREncode = "LBL201"

	// Renderer errors (3xx)
	ErrCodeTemplateParse   = "LBL301"
	ErrCodeTemplateExecute = "LBL302"
	ErrCodeLayoutLookup    = "LBL303"

	// Document output errors (4xx)
	ErrCodeCreateFile = "LBL401"
	ErrCodeWriteFile  = "LBL402"
	ErrCodeCloseFile  = "LBL403"

	// Catalog errors (5xx)
	ErrCodeCatalogStore    = "LBL501"
	ErrCodeCatalogNotFound = "LBL502"
	ErrCodeCatalogLookup   = "LBL503"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Upsert operation errors (1xx)
	ErrCodeDBUpsert = "DB101"

	// FindByEPRELID operation errors (2xx)
	ErrCodeDBLookup = "DB201"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation    = "validation"
	ErrTypeEncoding      = "encoding"
	ErrTypeConfiguration = "configuration"
	ErrTypeOutput        = "output"
	ErrTypeCatalog       = "catalog"

	// Infrastructure error types
	ErrTypeDB = "db"
)
