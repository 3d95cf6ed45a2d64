package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"video-share/pkg/apperror"
)

const youtubeTag = "contains=youtube|contains=youtu.be"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// rule pairs a validator tag with the full message reported when it fails.
type rule struct {
	tag     string
	message string
}

var (
	usernameRules = []rule{
		{"notblank", "Username can't be blank"},
	}
	passwordRules = []rule{
		{"required", "Password can't be blank"},
		{"min=8", "Password is too short (minimum is 8 characters)"},
	}
	titleRules = []rule{
		{"notblank", "Title can't be blank"},
	}
	urlRules = []rule{
		{"notblank", "Url can't be blank"},
		{"http_url", "Url is an invalid URL"},
		{youtubeTag, "Url is not youtube URL"},
	}
)

// check runs every rule against value independently so that all violations
// are reported, not only the first.
func check(messages []string, value string, rules []rule) []string {
	for _, r := range rules {
		if err := validate.Var(value, r.tag); err != nil {
			messages = append(messages, r.message)
		}
	}
	return messages
}

func asError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return apperror.NewValidationError(messages)
}

// ValidateCredentials checks a would-be account before its password is hashed.
func ValidateCredentials(username, password string) error {
	var messages []string
	messages = check(messages, username, usernameRules)
	messages = check(messages, password, passwordRules)
	return asError(messages)
}

// Validate checks title and url. The YouTube check is a plain substring
// match on "youtube" or "youtu.be"; the host is not inspected.
func (in VideoInput) Validate() error {
	var messages []string
	messages = check(messages, in.Title, titleRules)
	messages = check(messages, in.URL, urlRules)
	return asError(messages)
}
