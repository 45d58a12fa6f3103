package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	pkgauth "github.com/GanehsaConsulting/cms-admin-api/pkg/auth"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type singleUserRepo struct {
	user *model.User
}

func (r *singleUserRepo) Create(context.Context, *model.User) error { return nil }
func (r *singleUserRepo) Get(context.Context, int64) (*model.User, error) {
	return r.user, nil
}
func (r *singleUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, apperrors.NotFound("user")
}
func (r *singleUserRepo) Update(context.Context, *model.User) error { return nil }
func (r *singleUserRepo) Delete(context.Context, int64) error       { return nil }
func (r *singleUserRepo) List(context.Context) ([]*model.User, error) {
	return []*model.User{r.user}, nil
}

func testUser(t *testing.T, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		Base:         model.Base{ID: 5},
		Name:         "Dewi",
		Email:        "dewi@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       active,
	}
}

func newTestService(t *testing.T, user *model.User) *Service {
	t.Helper()
	return NewService(&singleUserRepo{user: user}, pkgauth.NewJWTService("test-secret", time.Hour))
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newTestService(t, testUser(t, true))

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "dewi@example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(5), resp.User.ID)

	claims, err := pkgauth.NewJWTService("test-secret", time.Hour).ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "dewi@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, testUser(t, true))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "dewi@example.com",
		Password: "wrong",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindUnauthorized, appErr.Kind)
	assert.Equal(t, "invalid credentials", appErr.Message)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newTestService(t, testUser(t, true))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindUnauthorized, appErr.Kind)
	assert.Equal(t, "invalid credentials", appErr.Message)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc := newTestService(t, testUser(t, false))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "dewi@example.com",
		Password: "hunter22",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindUnauthorized, appErr.Kind)
}
