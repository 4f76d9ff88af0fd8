package identity

// login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// registration request payload
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// provider sign-in payload: the ID token minted by the browser OAuth popup
type ProviderRequest struct {
	IDToken string `json:"id_token"`
}

// password strength check payload
type StrengthRequest struct {
	Password string `json:"password"`
}
