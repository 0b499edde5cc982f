package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"slot taken", httperr.ErrBusiness("slot_taken"), http.StatusConflict, "slot_taken"},
		{"wrapped", fmt.Errorf("create: %w", httperr.ErrBusiness("invalid_state")), http.StatusConflict, "invalid_state"},
		{"not found", httperr.ErrBusiness("barber_not_found"), http.StatusNotFound, "barber_not_found"},
		{"disabled", httperr.ErrBusiness("payments_disabled"), http.StatusNotImplemented, "payments_disabled"},
		{"unmapped code", httperr.ErrBusiness("something_new"), http.StatusBadRequest, "something_new"},
		{"validation", &validators.ValidationError{Fields: map[string]string{"Date": "es obligatorio"}}, http.StatusBadRequest, "invalid_request"},
		{"backend", errors.New("connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error_code":"`+tt.code+`"`)
		})
	}
}

func TestRespondError_HidesBackendDetails(t *testing.T) {
	w := respond(errors.New("pq: password authentication failed"))
	assert.NotContains(t, w.Body.String(), "password")
}
