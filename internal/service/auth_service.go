package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ansh-patel-repos/job-listing-portal/internal/events"
	"github.com/ansh-patel-repos/job-listing-portal/internal/model"
	"github.com/ansh-patel-repos/job-listing-portal/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrGoogleAccount      = errors.New("this account was registered with Google")
	ErrEmailTaken         = errors.New("email already registered")
)

const bcryptCost = 10

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// FederatedIdentity is the verified assertion handed over by the OAuth
// provider after a successful consent flow.
type FederatedIdentity struct {
	ExternalID string
	Email      string
	Name       string
	Picture    string
}

// ProfileUpdate carries the partial profile fields of an update request.
// Nil means "leave unchanged".
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Location    *string
	Bio         *string
	Skills      []string
	Experience  *string
	Company     *string
	CompanySize *string
	Industry    *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*model.User, error)
	HandleGoogleUser(ctx context.Context, identity FederatedIdentity) (*model.User, error)
}

type authService struct {
	users     repository.UserRepository
	publisher events.Publisher
}

func NewAuthService(users repository.UserRepository, publisher events.Publisher) AuthService {
	return &authService{users: users, publisher: publisher}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(in.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		AuthProvider: model.ProviderLocal,
		IsActive:     true,
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.publisher.PublishUserRegistered(user.ID.Hex(), user.Email, string(user.Role)); err != nil {
		slog.Warn("Failed to publish user.registered event", "error", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// OAuth-only accounts have no hash to compare against. This message is
	// deliberately specific; everything else stays generic.
	if user.PasswordHash == "" {
		return nil, ErrGoogleAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.touchLastLogin(ctx, user)

	if err := s.publisher.PublishUserLoggedIn(user.ID.Hex()); err != nil {
		slog.Warn("Failed to publish user.loggedin event", "error", err)
	}

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Phone != nil {
		user.Profile.Phone = *upd.Phone
	}
	if upd.Location != nil {
		user.Profile.Location = *upd.Location
	}
	if upd.Bio != nil {
		user.Profile.Bio = *upd.Bio
	}

	// Role-gated fields: updates for the other role are silently ignored.
	switch user.Role {
	case model.RoleJobSeeker:
		if upd.Skills != nil {
			user.Profile.Skills = upd.Skills
		}
		if upd.Experience != nil {
			user.Profile.Experience = *upd.Experience
		}
	case model.RoleEmployer:
		if upd.Company != nil {
			user.Profile.Company = *upd.Company
		}
		if upd.CompanySize != nil {
			user.Profile.CompanySize = *upd.CompanySize
		}
		if upd.Industry != nil {
			user.Profile.Industry = *upd.Industry
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// HandleGoogleUser resolves an incoming assertion into a local account.
// Three cases, in order: already linked, link to an existing email, create.
func (s *authService) HandleGoogleUser(ctx context.Context, identity FederatedIdentity) (*model.User, error) {
	user, err := s.users.FindByGoogleID(ctx, identity.ExternalID)
	switch {
	case err == nil:
		now := time.Now()
		user.LastLoginAt = &now
		if user.AvatarURL == nil && identity.Picture != "" {
			user.AvatarURL = &identity.Picture
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	user, err = s.users.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		// Account merge: a local registration with the same email gets the
		// Google identity attached instead of producing a duplicate.
		googleID := identity.ExternalID
		user.GoogleID = &googleID
		user.AuthProvider = model.ProviderGoogle
		if user.AvatarURL == nil && identity.Picture != "" {
			user.AvatarURL = &identity.Picture
		}
		now := time.Now()
		user.LastLoginAt = &now
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	googleID := identity.ExternalID
	now := time.Now()
	user = &model.User{
		Name:            identity.Name,
		Email:           strings.ToLower(identity.Email),
		Role:            model.RoleJobSeeker,
		GoogleID:        &googleID,
		AuthProvider:    model.ProviderGoogle,
		IsEmailVerified: true,
		IsActive:        true,
		LastLoginAt:     &now,
	}
	if identity.Picture != "" {
		picture := identity.Picture
		user.AvatarURL = &picture
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishUserRegistered(user.ID.Hex(), user.Email, string(user.Role)); err != nil {
		slog.Warn("Failed to publish user.registered event", "error", err)
	}

	return user, nil
}

func (s *authService) touchLastLogin(ctx context.Context, user *model.User) {
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		slog.Warn("Failed to update last login timestamp", "user_id", user.ID.Hex(), "error", err)
	}
}
