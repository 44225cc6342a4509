package filedock

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const maxEmailLength = 254

// Conservative email shape: local part starts with a letter and uses a
// restricted character set, single @, domain contains a dot.
var emailRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._%+-]*@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateUsername checks that a username is non-empty, 3-20 characters,
// alphanumeric only, and starts with a letter.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	}

	if err := validateUsernameLength(username); err != nil {
		return err
	}

	return validateUsernameCharacters(username)
}

func validateUsernameLength(username string) error {
	if len(username) < 3 || len(username) > 20 {
		return fmt.Errorf("%w: username must be between 3 and 20 characters", ErrInvalidInput)
	}
	return nil
}

func validateUsernameCharacters(username string) error {
	if strings.Contains(username, " ") {
		return fmt.Errorf("%w: username cannot contain spaces", ErrInvalidInput)
	}

	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("%w: username cannot contain special characters", ErrInvalidInput)
		}
	}

	if !unicode.IsLetter(rune(username[0])) {
		return fmt.Errorf("%w: username must start with a letter", ErrInvalidInput)
	}

	return nil
}

// ValidateEmail checks that an email is non-empty, matches the conservative
// format above, contains no whitespace, has exactly one @ with a dotted
// domain, does not start with a digit, and is at most 254 characters.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	if strings.ContainsAny(email, " \t") {
		return fmt.Errorf("%w: email cannot contain whitespace", ErrInvalidInput)
	}

	if strings.Count(email, "@") > 1 {
		return fmt.Errorf("%w: email cannot contain more than one '@' symbol", ErrInvalidInput)
	}

	domain := email[strings.Index(email, "@")+1:]
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("%w: email domain is invalid", ErrInvalidInput)
	}

	if len(email) > maxEmailLength {
		return fmt.Errorf("%w: email is too long, maximum length is %d characters", ErrInvalidInput, maxEmailLength)
	}

	if unicode.IsDigit(rune(email[0])) {
		return fmt.Errorf("%w: email cannot start with a number", ErrInvalidInput)
	}

	return nil
}
