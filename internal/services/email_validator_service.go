package services

import "context"

type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

// LocalValidator accepts any syntactically valid address. The
// AbstractAPI reputation validator replaces it when enabled.
type LocalValidator struct{}

func NewLocalValidator() *LocalValidator { return &LocalValidator{} }

func (v *LocalValidator) Validate(_ context.Context, email string) error {
	if !emailRegex.MatchString(email) {
		return errInvalidEmail
	}
	return nil
}
