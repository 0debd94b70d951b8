package dto

type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	EmployeeID Number `json:"id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
}

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

type GoogleLoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type UserResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

type CheckAuthResponse struct {
	Success bool           `json:"success"`
	User    map[string]any `json:"user"`
}
