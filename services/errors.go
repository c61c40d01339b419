package services

import (
	"errors"
	"fmt"
	"net/http"

	"bookstore-service/repository"
)

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func notFound(entity string, id interface{}) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("%s with id %v not found", entity, id)}
}

func validationFailed(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: message}
}

func conflict(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Message: message}
}

func unauthorized(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: message}
}

func internal(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: message}
}

// asServiceError recovers a ServiceError returned through a plain error
// (for example from inside a transaction callback).
func asServiceError(err error, fallback string) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return internal(fallback)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}
