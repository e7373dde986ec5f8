package dto

import "time"

type ToggleResumeRequest struct {
	Identity string `json:"identity" binding:"required" validate:"required"`
}

type ToggleResumeResponse struct {
	Enabled bool `json:"enabled"`
}

// ResumeView - резюме из выдачи провайдера с локальным флагом Enabled.
type ResumeView struct {
	Identity  string    `json:"identity"`
	Title     string    `json:"title"`
	Name      string    `json:"name"`
	Published time.Time `json:"published"`
	Link      string    `json:"link"`
	Enabled   bool      `json:"enabled"`
}

// ReconcileResult - результат синхронизации по всем аккаунтам
// пользователя. Errors хранит провайдеров, чья выдача недоступна
// в этом проходе (изоляция по аккаунтам).
type ReconcileResult struct {
	Providers map[string][]ResumeView `json:"providers"`
	Errors    map[string]string       `json:"errors,omitempty"`
}
