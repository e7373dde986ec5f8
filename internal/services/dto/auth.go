package dto

type LoginRequest struct {
	Code string `json:"code" binding:"required" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RedirectResponse struct {
	Redirect string `json:"redirect"`
}
