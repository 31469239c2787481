package validation

import "regexp"

// Validation rule patterns.
//
// Registration numbers are canonically nine digits. This is the single
// accepted rule for the whole application; any other format is rejected
// at signup and login.
var (
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	RegistrationNoPattern = `^\d{9}$`

	// Passwords need at least 8 characters with one letter and one digit.
	PasswordMinLength = 8
)

var (
	emailRe          = regexp.MustCompile(EmailPattern)
	registrationNoRe = regexp.MustCompile(RegistrationNoPattern)
	passwordLetterRe = regexp.MustCompile(`[A-Za-z]`)
	passwordDigitRe  = regexp.MustCompile(`\d`)
)

// ValidEmail reports whether the address has a plausible email shape.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidRegistrationNo reports whether the value is a nine-digit
// registration number.
func ValidRegistrationNo(regNo string) bool {
	return registrationNoRe.MatchString(regNo)
}

// ValidPassword reports whether the password meets the minimum policy:
// at least PasswordMinLength characters, one letter and one digit.
func ValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	return passwordLetterRe.MatchString(password) && passwordDigitRe.MatchString(password)
}
