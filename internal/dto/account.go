package dto

// CredentialsRequest is the form or JSON body for POST /register, /login and /admin/login.
type CredentialsRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// AccountResponse is an account as shown to its owner and to the admin.
type AccountResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Credits int64  `json:"credits"`
}

// RegisterResponse is returned by POST /register.
type RegisterResponse struct {
	Message string          `json:"message"`
	Account AccountResponse `json:"account"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	OK      bool            `json:"ok"`
	Account AccountResponse `json:"account"`
}

// MessageResponse carries a human-readable status line.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
