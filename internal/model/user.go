package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// Profile holds the role-dependent optional fields. Seeker and employer
// fields live side by side; the service layer decides which ones a given
// user may touch.
type Profile struct {
	Bio      string `bson:"bio" json:"bio"`
	Phone    string `bson:"phone" json:"phone"`
	Location string `bson:"location" json:"location"`

	// Job seeker fields
	Skills     []string `bson:"skills,omitempty" json:"skills,omitempty"`
	Experience string   `bson:"experience,omitempty" json:"experience,omitempty"`
	ResumeURL  *string  `bson:"resume,omitempty" json:"resume,omitempty"`

	// Employer fields
	Company     string `bson:"company,omitempty" json:"company,omitempty"`
	CompanySize string `bson:"companySize,omitempty" json:"companySize,omitempty"`
	Industry    string `bson:"industry,omitempty" json:"industry,omitempty"`
}

type User struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string        `bson:"name" json:"name"`
	Email           string        `bson:"email" json:"email"`
	PasswordHash    string        `bson:"password,omitempty" json:"-"`
	Role            Role          `bson:"role" json:"role"`
	GoogleID        *string       `bson:"googleId,omitempty" json:"-"`
	AuthProvider    AuthProvider  `bson:"authProvider" json:"auth_provider"`
	AvatarURL       *string       `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsEmailVerified bool          `bson:"isEmailVerified" json:"is_email_verified"`
	IsActive        bool          `bson:"isActive" json:"is_active"`
	LastLoginAt     *time.Time    `bson:"lastLogin,omitempty" json:"last_login,omitempty"`
	Profile         Profile       `bson:"profile" json:"profile"`
	CreatedAt       time.Time     `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updated_at"`
}

// PublicUser is the client-facing view of a user. It can never carry the
// password hash because it has no field for it.
type PublicUser struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	AvatarURL    *string      `json:"avatar,omitempty"`
	AuthProvider AuthProvider `json:"authProvider"`
	Profile      Profile      `json:"profile"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		AvatarURL:    u.AvatarURL,
		AuthProvider: u.AuthProvider,
		Profile:      u.Profile,
		CreatedAt:    u.CreatedAt,
	}
}
