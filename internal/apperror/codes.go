package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"

	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Option-arbitrage error codes
const (
	// Request contract
	CodeInvalidMode    Code = "INVALID_MODE"
	CodeInvalidStrikes Code = "INVALID_STRIKES"
	CodeMissingQuote   Code = "MISSING_QUOTE"
	CodeInvalidPrice   Code = "INVALID_PRICE"

	// Payoff construction
	CodeUnsupportedFlag        Code = "UNSUPPORTED_FLAG"
	CodeInvalidPriceGrid       Code = "INVALID_PRICE_GRID"
	CodeWeightResolutionFailed Code = "WEIGHT_RESOLUTION_FAILED"

	// Output
	CodeExportFailed Code = "EXPORT_FAILED"
)
