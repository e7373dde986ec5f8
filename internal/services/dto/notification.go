package dto

type ConfirmationResponse struct {
	Code string `json:"code"`
	TTL  int    `json:"ttl"`
}

type ToggleSubscriptionRequest struct {
	Channel string `json:"channel" binding:"required" validate:"required"`
}

type ToggleSubscriptionResponse struct {
	Enabled bool `json:"enabled"`
}

type SubscriptionView struct {
	Channel   string `json:"channel"`
	Enabled   bool   `json:"enabled"`
	Confirmed bool   `json:"confirmed"`
}
