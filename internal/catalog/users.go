package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/shopadmin/shopadmin/internal/core/cache"
	"github.com/shopadmin/shopadmin/internal/core/storage"
)

const dobLayout = "2006-01-02"

// UserInput registers a user. The id comes from the identity provider.
type UserInput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Photo  string `json:"photo"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"` // YYYY-MM-DD
}

func (in UserInput) parse() (storage.User, error) {
	if in.ID == "" || in.Name == "" || in.Email == "" || in.Photo == "" || in.Gender == "" || in.DOB == "" {
		return storage.User{}, invalidInputf("id, name, email, photo, gender and dob are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return storage.User{}, invalidInputf("invalid email %q", in.Email)
	}
	gender := strings.ToLower(in.Gender)
	if gender != storage.GenderMale && gender != storage.GenderFemale {
		return storage.User{}, invalidInputf("gender must be male or female")
	}
	dob, err := time.Parse(dobLayout, in.DOB)
	if err != nil {
		return storage.User{}, invalidInputf("dob must be formatted as %s", dobLayout)
	}
	return storage.User{
		ID:     in.ID,
		Name:   in.Name,
		Email:  in.Email,
		Photo:  in.Photo,
		Role:   storage.RoleUser,
		Gender: gender,
		DOB:    dob,
	}, nil
}

// NewUser registers a user. When the id is already known the existing user is
// returned with created set to false.
func (s *Service) NewUser(ctx context.Context, in UserInput) (user *storage.User, created bool, err error) {
	u, err := in.parse()
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetUser(ctx, u.ID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, storage.ErrNotFound):
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	now := s.nowFn()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.repo.CreateUser(ctx, &u); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	s.cache.Invalidate(cache.Invalidation{Admin: true})
	slog.Info("[Catalog] User created", "user_id", u.ID)
	return &u, true, nil
}

// AllUsers returns every user.
func (s *Service) AllUsers(ctx context.Context) ([]storage.User, error) {
	return s.repo.FindUsers(ctx, storage.UserFilter{})
}

// GetUser returns one user.
func (s *Service) GetUser(ctx context.Context, id string) (*storage.User, error) {
	return s.repo.GetUser(ctx, id)
}

// DeleteUser removes a user. Their orders are kept.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.cache.Invalidate(cache.Invalidation{Admin: true})
	slog.Info("[Catalog] User deleted", "user_id", id)
	return nil
}
