// Package user manages staff accounts.
package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GanehsaConsulting/cms-admin-api/internal/email"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type UserServicer interface {
	CreateUser(ctx context.Context, in *CreateInput) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, in *UpdateInput) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// CreateInput is the account creation payload. When Password is empty a
// temporary one is generated and sent by invite email.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UpdateInput struct {
	ID       int64
	Name     *string
	Role     *string
	Active   *bool
	Password *string
}

type Service struct {
	repo   repository.UserRepository
	mailer email.Service
}

func NewService(repo repository.UserRepository, mailer email.Service) *Service {
	return &Service{repo: repo, mailer: mailer}
}

func (s *Service) CreateUser(ctx context.Context, in *CreateInput) (*model.User, error) {
	var fields []apperrors.FieldError
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "must not be empty"})
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" {
		fields = append(fields, apperrors.FieldError{Field: "email", Message: "must not be empty"})
	}
	if in.Role == "" {
		in.Role = model.RoleEditor
	}
	if in.Role != model.RoleAdmin && in.Role != model.RoleEditor {
		fields = append(fields, apperrors.FieldError{Field: "role", Message: "must be admin or editor"})
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	password := in.Password
	invited := false
	if password == "" {
		var err error
		password, err = tempPassword()
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to generate password: %w", err))
		}
		invited = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperrors.FromPG(err, "user")
	}

	// The account exists either way; a failed invite is retried by an
	// admin resending, not by failing the request.
	if invited && s.mailer != nil {
		if err := s.mailer.SendInvite(ctx, user.Email, user.Name, password); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("failed to send invite email")
		}
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPG(err, "user")
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPG(err, "user")
	}
	return users, nil
}

func (s *Service) UpdateUser(ctx context.Context, in *UpdateInput) (*model.User, error) {
	user, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, apperrors.FromPG(err, "user")
	}

	var fields []apperrors.FieldError
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			fields = append(fields, apperrors.FieldError{Field: "name", Message: "must not be empty"})
		} else {
			user.Name = name
		}
	}
	if in.Role != nil {
		if *in.Role != model.RoleAdmin && *in.Role != model.RoleEditor {
			fields = append(fields, apperrors.FieldError{Field: "role", Message: "must be admin or editor"})
		} else {
			user.Role = *in.Role
		}
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			fields = append(fields, apperrors.FieldError{Field: "password", Message: "must be at least 8 characters"})
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
			}
			user.PasswordHash = string(hash)
		}
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.FromPG(err, "user")
	}
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.FromPG(err, "user")
	}
	return nil
}

func tempPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
