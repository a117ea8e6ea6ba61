package api

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ansh-patel-repos/job-listing-portal/internal/model"
	"github.com/ansh-patel-repos/job-listing-portal/internal/oauth"
	"github.com/ansh-patel-repos/job-listing-portal/internal/repository"
	"github.com/ansh-patel-repos/job-listing-portal/internal/service"
	"github.com/ansh-patel-repos/job-listing-portal/internal/token"
	"github.com/ansh-patel-repos/job-listing-portal/internal/validation"
)

// GoogleAuthenticator is the slice of the OAuth client the gateway needs.
type GoogleAuthenticator interface {
	AuthURL() (string, error)
	Exchange(ctx context.Context, code, state string) (*oauth.GoogleUser, error)
}

type AuthHandler struct {
	authService service.AuthService
	tokens      *token.Manager
	google      GoogleAuthenticator
	frontendURL string
}

func NewAuthHandler(authService service.AuthService, tokens *token.Manager, google GoogleAuthenticator, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		google:      google,
		frontendURL: frontendURL,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name        *string  `json:"name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Experience  *string  `json:"experience,omitempty"`
	Company     *string  `json:"company,omitempty"`
	CompanySize *string  `json:"companySize,omitempty"`
	Industry    *string  `json:"industry,omitempty"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}

	result := validation.ValidateRegistration(validation.RegistrationInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if !result.IsValid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  result.Errors,
		})
	}

	user, err := h.authService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Email already registered",
			})
		}
		return serverError(c, "Error during registration")
	}

	tokenString, err := h.tokens.Generate(user.ID.Hex())
	if err != nil {
		return serverError(c, "Error during registration")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   tokenString,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}

	result := validation.ValidateLogin(validation.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if !result.IsValid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  result.Errors,
		})
	}

	user, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoogleAccount):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "This account was registered with Google. Please use Google login.",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid email or password",
			})
		}
		return serverError(c, "Error during login")
	}

	tokenString, err := h.tokens.Generate(user.ID.Hex())
	if err != nil {
		return serverError(c, "Error during login")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   tokenString,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) GetCurrentUser(c *fiber.Ctx) error {
	userID, err := UserIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	user, err := h.authService.GetUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return serverError(c, "Error fetching user")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user.Public(),
	})
}

// Logout is a client-side discard contract: tokens are stateless, so there
// is nothing to revoke server-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	userID, err := UserIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	tokenString, err := h.tokens.Generate(userID)
	if err != nil {
		return serverError(c, "Error refreshing token")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Token refreshed successfully",
		"token":   tokenString,
	})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := UserIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot parse JSON",
		})
	}

	user, err := h.authService.UpdateProfile(c.Context(), userID, service.ProfileUpdate{
		Name:        req.Name,
		Phone:       req.Phone,
		Location:    req.Location,
		Bio:         req.Bio,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Company:     req.Company,
		CompanySize: req.CompanySize,
		Industry:    req.Industry,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return serverError(c, "Error updating profile")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

func (h *AuthHandler) GoogleStart(c *fiber.Ctx) error {
	authURL, err := h.google.AuthURL()
	if err != nil {
		return serverError(c, "Error starting Google login")
	}
	return c.Redirect(authURL, fiber.StatusTemporaryRedirect)
}

// GoogleCallback ends in a redirect, not a JSON body: the user agent is
// mid-flow, so failures are encoded into the frontend error route.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	googleUser, err := h.google.Exchange(c.Context(), code, state)
	if err != nil {
		return h.redirectError(c, "Google sign-in failed. Please try again.")
	}

	user, err := h.authService.HandleGoogleUser(c.Context(), service.FederatedIdentity{
		ExternalID: googleUser.ID,
		Email:      googleUser.Email,
		Name:       googleUser.Name,
		Picture:    googleUser.Picture,
	})
	if err != nil {
		return h.redirectError(c, "Could not complete Google sign-in.")
	}

	tokenString, err := h.tokens.Generate(user.ID.Hex())
	if err != nil {
		return h.redirectError(c, "Could not complete Google sign-in.")
	}

	redirect := h.frontendURL + "/auth-success?token=" + url.QueryEscape(tokenString) + "&role=" + url.QueryEscape(string(user.Role))
	return c.Redirect(redirect, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "Job portal API is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *AuthHandler) redirectError(c *fiber.Ctx, message string) error {
	redirect := h.frontendURL + "/auth-error?message=" + url.QueryEscape(message)
	return c.Redirect(redirect, fiber.StatusTemporaryRedirect)
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
