package validation

import "testing"

func TestValidRegistrationNo(t *testing.T) {
	valid := []string{"123456789", "000000000", "987654321"}
	for _, regNo := range valid {
		if !ValidRegistrationNo(regNo) {
			t.Errorf("ValidRegistrationNo(%q) = false, want true", regNo)
		}
	}

	invalid := []string{"", "12345678", "1234567890", "12345678a", "12 345678", "12345678\n1"}
	for _, regNo := range invalid {
		if ValidRegistrationNo(regNo) {
			t.Errorf("ValidRegistrationNo(%q) = true, want false", regNo)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"student@example.com", "first.last+tag@sub.example.co.in"}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plainaddress", "@example.com", "user@", "user@domain", "user @example.com"}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = true, want false", email)
		}
	}
}

func TestValidPassword(t *testing.T) {
	valid := []string{"abcdefg1", "Passw0rd!", "1234567a"}
	for _, password := range valid {
		if !ValidPassword(password) {
			t.Errorf("ValidPassword(%q) = false, want true", password)
		}
	}

	invalid := []string{
		"",
		"short1a",    // below minimum length
		"abcdefgh",   // no digit
		"12345678",   // no letter
		"!@#$%^&*()", // neither
	}
	for _, password := range invalid {
		if ValidPassword(password) {
			t.Errorf("ValidPassword(%q) = true, want false", password)
		}
	}
}
