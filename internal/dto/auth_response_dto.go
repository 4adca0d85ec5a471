package dto

// LoginResponse carries the signed JWT returned after successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
