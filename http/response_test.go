package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagarc03/filedock"
	filedockhttp "github.com/sagarc03/filedock/http"
	"github.com/stretchr/testify/assert"
)

func TestHandleError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	filedockhttp.HandleError(rec, filedock.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestHandleError_InvalidInput(t *testing.T) {
	rec := httptest.NewRecorder()

	filedockhttp.HandleError(rec, fmt.Errorf("%w: file name is invalid", filedock.ErrInvalidInput))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_input")
	assert.Contains(t, rec.Body.String(), "file name is invalid")
}

func TestHandleError_AccessDenied(t *testing.T) {
	rec := httptest.NewRecorder()

	filedockhttp.HandleError(rec, filedock.ErrAccessDenied)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_denied")
}

func TestHandleError_Conflict(t *testing.T) {
	rec := httptest.NewRecorder()

	filedockhttp.HandleError(rec, filedock.ErrConflict)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "conflict")
}

func TestHandleError_InternalError(t *testing.T) {
	rec := httptest.NewRecorder()

	filedockhttp.HandleError(rec, errors.New("some unexpected error"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}

func TestHandleError_WrappedNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	wrappedErr := errors.Join(errors.New("context"), filedock.ErrNotFound)
	filedockhttp.HandleError(rec, wrappedErr)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestWriteError_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	filedockhttp.WriteError(rec, http.StatusBadRequest, "invalid_request", "bad request")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "invalid_request")
	assert.Contains(t, rec.Body.String(), "bad request")
}

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	err := filedockhttp.WriteJSON(rec, http.StatusOK, map[string]string{"ok": "yes"})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"ok":"yes"`)
}
