package request

// CreateGuestRequest is the body for POST /players/guest
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the body for POST /players/register
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the body for POST /players/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DecryptRequest is the body for POST /arena/decrypt
type DecryptRequest struct {
	Handle string `json:"handle"`
}
