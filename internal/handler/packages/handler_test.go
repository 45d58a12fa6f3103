package packages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type stubServicer struct {
	pkg       *model.Package
	err       error
	gotUpdate *model.PackageUpdate
}

func (s *stubServicer) CreatePackage(_ context.Context, _ *model.PackageCreate) (*model.Package, error) {
	return s.pkg, s.err
}

func (s *stubServicer) GetPackage(_ context.Context, _ int64) (*model.Package, error) {
	return s.pkg, s.err
}

func (s *stubServicer) ListPackages(_ context.Context, _ int64) ([]*model.Package, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*model.Package{s.pkg}, nil
}

func (s *stubServicer) UpdatePackage(_ context.Context, _ int64, upd *model.PackageUpdate) (*model.Package, error) {
	s.gotUpdate = upd
	return s.pkg, s.err
}

func (s *stubServicer) DeletePackage(_ context.Context, _ int64) error {
	return s.err
}

func newTestRouter(svc *stubServicer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.GET("/packages/:id", h.Get)
	r.PATCH("/packages/:id", h.Update)
	r.DELETE("/packages/:id", h.Delete)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestGetNotFoundMapsTo404(t *testing.T) {
	r := newTestRouter(&stubServicer{err: apperrors.NotFound("package")})

	w, envelope := doRequest(t, r, http.MethodGet, "/packages/42", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "NOT_FOUND", envelope["code"])
	assert.Equal(t, "package not found", envelope["message"])
}

func TestPatchValidationMapsTo400WithFields(t *testing.T) {
	r := newTestRouter(&stubServicer{err: apperrors.Validation([]apperrors.FieldError{
		{Field: "price", Message: "must be a non-negative integer"},
		{Field: "discount", Message: "must be an integer between 0 and 99"},
	})})

	w, envelope := doRequest(t, r, http.MethodPatch, "/packages/42", `{"price":-5,"discount":150}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", envelope["code"])

	data := envelope["data"].(map[string]interface{})
	fields := data["fields"].([]interface{})
	assert.Len(t, fields, 2)
}

func TestPatchTimeoutMapsTo504(t *testing.T) {
	r := newTestRouter(&stubServicer{err: apperrors.Timeout(context.DeadlineExceeded)})

	w, envelope := doRequest(t, r, http.MethodPatch, "/packages/42", `{"price":1}`)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "TIMEOUT", envelope["code"])
}

func TestPatchConflictMapsTo409(t *testing.T) {
	r := newTestRouter(&stubServicer{err: apperrors.Conflict("package already exists", nil)})

	w, envelope := doRequest(t, r, http.MethodPatch, "/packages/42", `{"type":"Business"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", envelope["code"])
}

func TestPatchDistinguishesOmittedFromEmpty(t *testing.T) {
	svc := &stubServicer{pkg: &model.Package{}}
	r := newTestRouter(svc)

	_, _ = doRequest(t, r, http.MethodPatch, "/packages/42", `{"price":5}`)
	require.NotNil(t, svc.gotUpdate)
	assert.Nil(t, svc.gotUpdate.Features)

	_, _ = doRequest(t, r, http.MethodPatch, "/packages/42", `{"features":[]}`)
	require.NotNil(t, svc.gotUpdate.Features)
	assert.Empty(t, *svc.gotUpdate.Features)
}

func TestPatchMalformedBodyIs400(t *testing.T) {
	r := newTestRouter(&stubServicer{pkg: &model.Package{}})

	w, envelope := doRequest(t, r, http.MethodPatch, "/packages/42", `{"price":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", envelope["code"])
}

func TestBadIDIs400(t *testing.T) {
	r := newTestRouter(&stubServicer{pkg: &model.Package{}})

	w, _ := doRequest(t, r, http.MethodDelete, "/packages/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSuccessEnvelope(t *testing.T) {
	r := newTestRouter(&stubServicer{})

	w, envelope := doRequest(t, r, http.MethodDelete, "/packages/42", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "package deleted", envelope["message"])
}
