package user

import (
	"regexp"

	"lawease/utils"
)

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	numberRe = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[\W_]`)
)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	switch {
	case len(pw) < 8:
		return utils.NewValidation("Password must be at least 8 characters long")
	case len(pw) > 72:
		return utils.NewValidation("Password must be at most 72 characters long")
	case !upperRe.MatchString(pw):
		return utils.NewValidation("Password must include at least one uppercase letter")
	case !lowerRe.MatchString(pw):
		return utils.NewValidation("Password must include at least one lowercase letter")
	case !numberRe.MatchString(pw):
		return utils.NewValidation("Password must include at least one number")
	case !symbolRe.MatchString(pw):
		return utils.NewValidation("Password must include at least one symbol")
	}
	return nil
}
