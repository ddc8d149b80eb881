package dto

// CredentialsRequest entrada para registro de credenciales y login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// LoginResponse token de sesión firmado + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
