package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Ошибки взаимодействия с внешним провайдером
	CodeProviderError ErrorCode = "PROVIDER_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotConfirmed     ErrorCode = "NOT_CONFIRMED"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
)
