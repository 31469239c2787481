package dto

// SignupRequest registers a new student. Email accepts either key the
// older clients send (email or email_id).
type SignupRequest struct {
	RegistrationNo string `json:"registration_no"`
	Email          string `json:"email"`
	EmailID        string `json:"email_id"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	RollNumber     string `json:"roll_number"`
	MobileNo       string `json:"mobile_no"`
}

// EmailAddress returns whichever email field the client populated.
func (r *SignupRequest) EmailAddress() string {
	if r.Email != "" {
		return r.Email
	}
	return r.EmailID
}

// LoginRequest authenticates a student by email.
type LoginRequest struct {
	EmailID  string `json:"email_id"`
	Password string `json:"password"`
}

// AdminLoginRequest authenticates an admin by username.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest asks for a password-reset link.
type ResetPasswordRequest struct {
	EmailID string `json:"email_id"`
}

// TokenResponse carries a freshly minted access token.
type TokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}
