package utils

const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAmbiguousName = "AMBIGUOUS_NAME"
	ErrCodeRoleChoice    = "ROLE_CHOICE_REQUIRED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewAppError(code, message string, details ...string) *AppError {
	e := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func (e *AppError) Error() string {
	return e.Message
}
