package errors

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
	}{
		{Validation([]FieldError{{Field: "price", Message: "must be >= 0"}}), http.StatusBadRequest, "VALIDATION"},
		{NotFound("package"), http.StatusNotFound, "NOT_FOUND"},
		{Unauthorized("missing token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{Timeout(context.DeadlineExceeded), http.StatusGatewayTimeout, "TIMEOUT"},
		{Conflict("feature already exists", nil), http.StatusConflict, "CONFLICT"},
		{Internal(fmt.Errorf("boom")), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode())
		assert.Equal(t, tc.code, tc.err.Code())
	}
}

func TestValidationAggregatesFields(t *testing.T) {
	err := Validation([]FieldError{
		{Field: "price", Message: "must be >= 0"},
		{Field: "discount", Message: "must be between 0 and 99"},
	})

	assert.Len(t, err.Fields, 2)
	assert.Contains(t, err.Message, "price")
	assert.Contains(t, err.Message, "discount")
}

func TestFromPG(t *testing.T) {
	assert.Equal(t, KindNotFound, FromPG(sql.ErrNoRows, "package").Kind)
	assert.Equal(t, KindTimeout, FromPG(context.DeadlineExceeded, "package").Kind)

	unique := &pq.Error{Code: "23505"}
	assert.Equal(t, KindConflict, FromPG(unique, "feature").Kind)

	fk := &pq.Error{Code: "23503"}
	assert.Equal(t, KindReferential, FromPG(fk, "package").Kind)

	assert.Equal(t, KindInternal, FromPG(fmt.Errorf("connection reset"), "package").Kind)
}

func TestFromPGPreservesAppError(t *testing.T) {
	orig := NotFound("service")
	wrapped := fmt.Errorf("load: %w", orig)

	assert.Same(t, orig, FromPG(wrapped, "package"))
}
