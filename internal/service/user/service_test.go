package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperrors.NotFound("user")
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.NotFound("user")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeMailer struct {
	invites []string
	err     error
}

func (f *fakeMailer) SendInvite(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.invites = append(f.invites, to)
	return nil
}

func TestCreateHashesPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), nil)

	u, err := svc.CreateUser(context.Background(), &CreateInput{
		Name:     "Dewi",
		Email:    "Dewi@Example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	assert.Equal(t, "dewi@example.com", u.Email)
	assert.NotEqual(t, "hunter22", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")))
	assert.Equal(t, model.RoleEditor, u.Role)
	assert.True(t, u.Active)
}

func TestCreateWithoutPasswordSendsInvite(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(newFakeUserRepo(), mailer)

	_, err := svc.CreateUser(context.Background(), &CreateInput{
		Name:  "Dewi",
		Email: "dewi@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"dewi@example.com"}, mailer.invites)
}

func TestCreateSurvivesInviteFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeMailer{err: errors.New("smtp down")})

	u, err := svc.CreateUser(context.Background(), &CreateInput{
		Name:  "Dewi",
		Email: "dewi@example.com",
	})

	require.NoError(t, err)
	assert.Contains(t, repo.users, u.ID)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeUserRepo(), nil)

	_, err := svc.CreateUser(context.Background(), &CreateInput{
		Name:  "Dewi",
		Email: "dewi@example.com",
		Role:  "owner",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}

func TestUpdateRejectsShortPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil)
	u, err := svc.CreateUser(context.Background(), &CreateInput{
		Name:     "Dewi",
		Email:    "dewi@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	short := "abc"
	_, err = svc.UpdateUser(context.Background(), &UpdateInput{ID: u.ID, Password: &short})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}
