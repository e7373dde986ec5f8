package dto

// ProviderStats - число аккаунтов и резюме одного провайдера.
type ProviderStats struct {
	Name     string `json:"name"`
	Accounts int64  `json:"accounts"`
	Resumes  int64  `json:"resume"`
}

type DatabaseHealth struct {
	Current int64 `json:"current"`
	Max     int64 `json:"max"`
}

type StatsResponse struct {
	Providers []ProviderStats `json:"providers"`
	Health    struct {
		Database DatabaseHealth `json:"database"`
	} `json:"health"`
}
