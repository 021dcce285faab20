package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/interview-prep/internal/db"
)

// BadRequestError indicates a malformed or incomplete request body.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// NotFoundError indicates the requested resource does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// StorageDisabledError indicates a persistence endpoint was hit without
// a configured database.
type StorageDisabledError struct{}

func (e *StorageDisabledError) Error() string {
	return "storage is not configured; set DATABASE_URL to enable /analyses endpoints"
}

// IngestionError indicates a job posting could not be fetched or parsed.
type IngestionError struct {
	URL string
	Err error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("failed to ingest %s: %v", e.URL, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// httpStatus maps an error to its HTTP status code
func httpStatus(err error) int {
	var badRequest *BadRequestError
	var notFound *NotFoundError
	var disabled *StorageDisabledError
	var ingestion *IngestionError

	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &disabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &ingestion):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes an error response with the mapped status code.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.errorResponse(w, httpStatus(err), err.Error())
}
