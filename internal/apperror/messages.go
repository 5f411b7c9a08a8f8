package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeRateLimitExceeded: "Rate limit exceeded",

	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	CodeInvalidMode:    "Mode must be one of calls, puts or both",
	CodeInvalidStrikes: "Strikes must be strictly increasing (X1 < X2 < X3)",
	CodeMissingQuote:   "Price quote required by mode is missing",
	CodeInvalidPrice:   "Invalid option price",

	CodeUnsupportedFlag:        "No payoff construction exists for this flag",
	CodeInvalidPriceGrid:       "Invalid underlying price grid",
	CodeWeightResolutionFailed: "Butterfly weights could not be resolved",

	CodeExportFailed: "Failed to export payoff curve",
}
