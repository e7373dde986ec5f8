package models

import "time"

// Confirmation - одноразовый числовой код, подтверждающий владение
// адресом канала уведомлений. Живет не дольше TTL канала, на пару
// (user, channel) существует не более одного живого кода.
type Confirmation struct {
	BaseModel
	Code    string    `gorm:"not null;uniqueIndex"`
	Channel string    `gorm:"not null;index"`
	Expires time.Time `gorm:"not null"`
	UserID  string    `gorm:"type:uuid;not null;index"`
}

func (c *Confirmation) IsExpired(now time.Time) bool {
	return now.After(c.Expires)
}

// SecondsLeft - остаток жизни кода, не меньше нуля.
func (c *Confirmation) SecondsLeft(now time.Time) int {
	left := int(c.Expires.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}
