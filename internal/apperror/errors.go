package apperror

import (
	"errors"
	"net/http"
)

// Error is an error with the HTTP status it should surface as.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

var (
	ErrTranscriptNotFound  = New(http.StatusNotFound, "transcript not found")
	ErrArrangementNotFound = New(http.StatusNotFound, "arrangement not found")
	ErrDocumentNotFound    = New(http.StatusNotFound, "document not found")
	ErrTaskNotFound        = New(http.StatusNotFound, "task not found")
	ErrUserNotFound        = New(http.StatusNotFound, "user not found")

	ErrUnauthorized       = New(http.StatusUnauthorized, "unauthorized")
	ErrInvalidCredentials = New(http.StatusUnauthorized, "invalid email or password")
	ErrForbidden          = New(http.StatusForbidden, "access denied")

	ErrEmailTaken        = New(http.StatusConflict, "email already registered")
	ErrInvalidResetToken = New(http.StatusBadRequest, "reset token is invalid or expired")
	ErrPDFUpload         = New(http.StatusBadRequest, "PDF files are not supported. Copy the transcript text into a .txt file or paste it directly.")
	ErrEmptyTranscript   = New(http.StatusBadRequest, "transcript content is empty")
	ErrInvalidDocType    = New(http.StatusBadRequest, "invalid document type")
	ErrNotProcessed      = New(http.StatusBadRequest, "transcript has no arrangement yet")

	ErrLLMNotConfigured = New(http.StatusInternalServerError, "AI service is not configured")
	ErrLLMTimeout       = New(http.StatusGatewayTimeout, "AI service timed out")
	ErrExtraction       = New(http.StatusInternalServerError, "failed to extract arrangement data")
)

// StatusOf maps any error to an HTTP status. Unknown errors are 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
