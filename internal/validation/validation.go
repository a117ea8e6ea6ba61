package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Result reports every failing field at once so the client can render all
// errors in a single pass.
type Result struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

type RegistrationInput struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=job_seeker employer"`
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

var registrationMessages = map[string]string{
	"Name":     "Name must be at least 2 characters",
	"Email":    "Invalid email format",
	"Password": "Password must be at least 6 characters",
	"Role":     "Invalid role selected",
}

var loginMessages = map[string]string{
	"Email":    "Invalid email format",
	"Password": "Password is required",
}

func ValidateRegistration(in RegistrationInput) Result {
	in.Name = strings.TrimSpace(in.Name)
	return check(in, registrationMessages)
}

func ValidateLogin(in LoginInput) Result {
	return check(in, loginMessages)
}

func check(in any, messages map[string]string) Result {
	err := validate.Struct(in)
	if err == nil {
		return Result{IsValid: true, Errors: map[string]string{}}
	}

	fieldErrors := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			if msg, ok := messages[fe.Field()]; ok {
				fieldErrors[field] = msg
			} else {
				fieldErrors[field] = "Invalid value"
			}
		}
	}

	return Result{IsValid: false, Errors: fieldErrors}
}
