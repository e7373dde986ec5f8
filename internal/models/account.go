package models

import "time"

// Account - привязанный аккаунт внешнего провайдера (одна пара
// user+provider). Токены ротируются джобой refresh-accounts.
type Account struct {
	BaseModel
	Identity string    `gorm:"not null;uniqueIndex:uniq_account_identity"`
	Provider string    `gorm:"not null;uniqueIndex:uniq_account_identity;index"`
	Access   string    `gorm:"not null"`
	Refresh  string    `gorm:"not null"`
	Expires  time.Time `gorm:"not null;index"`
	UserID   string    `gorm:"type:uuid;not null;index"`

	Resumes []Resume `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// IsExpired сообщает, истек ли access-токен.
func (a *Account) IsExpired(now time.Time) bool {
	return now.After(a.Expires)
}

// ReapAfter - момент, после которого аккаунт подлежит удалению
// (expires + grace-период без успешного refresh).
func (a *Account) ReapAfter(grace time.Duration) time.Time {
	return a.Expires.Add(grace)
}
