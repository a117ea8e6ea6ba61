package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ansh-patel-repos/job-listing-portal/internal/model"
	"github.com/ansh-patel-repos/job-listing-portal/internal/repository"
	"github.com/ansh-patel-repos/job-listing-portal/internal/s3"
	"github.com/ansh-patel-repos/job-listing-portal/internal/service"
)

type UploadHandler struct {
	authService service.AuthService
	presigner   *s3.FilePresigner
}

func NewUploadHandler(authService service.AuthService, presigner *s3.FilePresigner) *UploadHandler {
	return &UploadHandler{authService: authService, presigner: presigner}
}

func (h *UploadHandler) GetAvatarUploadURL(c *fiber.Ctx) error {
	userID, err := UserIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	objectKey := "user-avatars/" + userID + "/" + uuid.New().String() + ".jpg"
	return h.presign(c, objectKey)
}

// GetResumeUploadURL hands out an upload slot for a resume. Only job seekers
// have one.
func (h *UploadHandler) GetResumeUploadURL(c *fiber.Ctx) error {
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
		return serverError(c, "Could not generate upload URL")
	}

	if user.Role != model.RoleJobSeeker {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Only job seekers can upload a resume",
		})
	}

	objectKey := "resumes/" + userID + "/" + uuid.New().String() + ".pdf"
	return h.presign(c, objectKey)
}

func (h *UploadHandler) presign(c *fiber.Ctx, objectKey string) error {
	uploadURL, err := h.presigner.GeneratePresignedUploadURL(objectKey)
	if err != nil {
		return serverError(c, "Could not generate upload URL")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"upload_url": uploadURL,
		"file_url":   h.presigner.ObjectURL(objectKey),
	})
}
