package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/ansh-patel-repos/job-listing-portal/internal/events"
	"github.com/ansh-patel-repos/job-listing-portal/internal/model"
	"github.com/ansh-patel-repos/job-listing-portal/internal/repository"
	"github.com/ansh-patel-repos/job-listing-portal/internal/service"
)

// fakeUserRepo is an in-memory stand-in for the Mongo repository, enforcing
// the same uniqueness rules.
type fakeUserRepo struct {
	users map[string]*model.User // keyed by hex id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(user.Email) {
			return nil, repository.ErrDuplicateEmail
		}
		if u.GoogleID != nil && user.GoogleID != nil && *u.GoogleID == *user.GoogleID {
			return nil, repository.ErrDuplicateGoogleID
		}
	}

	user.ID = bson.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	clone := *user
	r.users[user.ID.Hex()] = &clone

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	clone := *user
	r.users[user.ID.Hex()] = &clone
	return nil
}

func newService(repo repository.UserRepository) service.AuthService {
	return service.NewAuthService(repo, events.NoopPublisher{})
}

func TestRegister_StoresLowercaseEmailAndHashedPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Ann",
		Email:    "A@X.com",
		Password: "secret1",
		Role:     model.RoleJobSeeker,
	})
	require.NoError(t, err)

	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, model.ProviderLocal, user.AuthProvider)
	require.True(t, user.IsActive)
	require.False(t, user.IsEmailVerified)

	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

func TestRegister_PublicViewNeverLeaksPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "secret1",
		Role:     model.RoleEmployer,
	})
	require.NoError(t, err)

	pub := user.Public()
	require.Equal(t, user.ID.Hex(), pub.ID)
	require.Equal(t, "ann@example.com", pub.Email)
	require.Equal(t, model.RoleEmployer, pub.Role)
}

func TestRegister_DuplicateEmailAnyCasing(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "secret1", Role: model.RoleJobSeeker,
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), service.RegisterInput{
		Name: "Other", Email: "ANN@Example.COM", Password: "secret2", Role: model.RoleEmployer,
	})
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	registered, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "Ann", Email: "a@x.com", Password: "secret1", Role: model.RoleJobSeeker,
	})
	require.NoError(t, err)

	t.Run("wrong password is generic", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "a@x.com", "wrong")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email is generic", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("correct password succeeds and touches last login", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "a@x.com", "secret1")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)

		stored, err := repo.FindByID(context.Background(), user.ID.Hex())
		require.NoError(t, err)
		require.NotNil(t, stored.LastLoginAt)
	})

	t.Run("login does not rehash the stored password", func(t *testing.T) {
		before, err := repo.FindByID(context.Background(), registered.ID.Hex())
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), "a@x.com", "secret1")
		require.NoError(t, err)

		after, err := repo.FindByID(context.Background(), registered.ID.Hex())
		require.NoError(t, err)
		require.Equal(t, before.PasswordHash, after.PasswordHash)
	})
}

func TestLogin_GoogleOnlyAccountIsExplicit(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.HandleGoogleUser(context.Background(), service.FederatedIdentity{
		ExternalID: "google-123",
		Email:      "g@x.com",
		Name:       "G User",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "g@x.com", "any-password")
	require.ErrorIs(t, err, service.ErrGoogleAccount)
}

func TestHandleGoogleUser_CreatesSeekerWithVerifiedEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	user, err := svc.HandleGoogleUser(context.Background(), service.FederatedIdentity{
		ExternalID: "google-123",
		Email:      "New@X.com",
		Name:       "New User",
		Picture:    "https://example.com/p.jpg",
	})
	require.NoError(t, err)

	require.Equal(t, "new@x.com", user.Email)
	require.Equal(t, model.RoleJobSeeker, user.Role)
	require.Equal(t, model.ProviderGoogle, user.AuthProvider)
	require.True(t, user.IsEmailVerified)
	require.Empty(t, user.PasswordHash)
	require.NotNil(t, user.GoogleID)
	require.Equal(t, "google-123", *user.GoogleID)
	require.NotNil(t, user.AvatarURL)
}

func TestHandleGoogleUser_SecondAssertionReusesUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	first, err := svc.HandleGoogleUser(context.Background(), service.FederatedIdentity{
		ExternalID: "google-123", Email: "g@x.com", Name: "G",
	})
	require.NoError(t, err)

	second, err := svc.HandleGoogleUser(context.Background(), service.FederatedIdentity{
		ExternalID: "google-123", Email: "g@x.com", Name: "G",
	})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Len(t, repo.users, 1)
	require.NotNil(t, second.LastLoginAt)
}

func TestHandleGoogleUser_LinksExistingLocalAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	local, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "secret1", Role: model.RoleEmployer,
	})
	require.NoError(t, err)

	linked, err := svc.HandleGoogleUser(context.Background(), service.FederatedIdentity{
		ExternalID: "google-456",
		Email:      "ann@x.com",
		Name:       "Ann",
		Picture:    "https://example.com/a.jpg",
	})
	require.NoError(t, err)

	require.Equal(t, local.ID, linked.ID)
	require.Len(t, repo.users, 1)
	require.NotNil(t, linked.GoogleID)
	require.Equal(t, "google-456", *linked.GoogleID)
	require.Equal(t, model.ProviderGoogle, linked.AuthProvider)
	// role survives the merge
	require.Equal(t, model.RoleEmployer, linked.Role)
}

func TestUpdateProfile_RoleGating(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	seeker, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "Ann", Email: "seeker@x.com", Password: "secret1", Role: model.RoleJobSeeker,
	})
	require.NoError(t, err)

	company := "Acme"
	bio := "Hello"
	skills := []string{"go", "mongodb"}
	updated, err := svc.UpdateProfile(context.Background(), seeker.ID.Hex(), service.ProfileUpdate{
		Bio:     &bio,
		Skills:  skills,
		Company: &company, // employer field, must be silently ignored
	})
	require.NoError(t, err)

	require.Equal(t, "Hello", updated.Profile.Bio)
	require.Equal(t, skills, updated.Profile.Skills)
	require.Empty(t, updated.Profile.Company)
}

func TestUpdateProfile_EmployerFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	employer, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "Bob", Email: "emp@x.com", Password: "secret1", Role: model.RoleEmployer,
	})
	require.NoError(t, err)

	company := "Acme"
	size := "11-50"
	experience := "5 years"
	updated, err := svc.UpdateProfile(context.Background(), employer.ID.Hex(), service.ProfileUpdate{
		Company:     &company,
		CompanySize: &size,
		Experience:  &experience, // seeker field, ignored
	})
	require.NoError(t, err)

	require.Equal(t, "Acme", updated.Profile.Company)
	require.Equal(t, "11-50", updated.Profile.CompanySize)
	require.Empty(t, updated.Profile.Experience)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc := newService(newFakeUserRepo())

	name := "Ann"
	_, err := svc.UpdateProfile(context.Background(), bson.NewObjectID().Hex(), service.ProfileUpdate{Name: &name})
	require.ErrorIs(t, err, repository.ErrNotFound)
}
