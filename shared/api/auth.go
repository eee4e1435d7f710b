package api

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UploadResponse struct {
	Url string `json:"url"`
}

// IdentityHeader carries the caller's identity token on every request.
const IdentityHeader = "X-User-Identifier"

// MaxIdentityLen bounds identity tokens accepted by the server.
const MaxIdentityLen = 128
