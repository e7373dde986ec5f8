package models

import (
	"time"

	"gorm.io/datatypes"
)

// Типы уведомлений, которые ставят в очередь фоновые джобы.
const (
	NotificationTypePushSuccess    = "push_success"
	NotificationTypeRefreshSuccess = "refresh_success"
)

// Notification - сообщение в очереди на доставку пользователю.
// Sended выставляет джоба notify после успешной отправки; просроченные
// записи не доставляются и удаляются cleanup-ом.
type Notification struct {
	BaseModel
	Channel string         `gorm:"not null;index"`
	Message string         `gorm:"not null"`
	Data    datatypes.JSON // контекст события: провайдер, identity резюме
	Expires time.Time      `gorm:"not null"`
	Sended  bool           `gorm:"not null;default:false;index"`
	UserID  string         `gorm:"type:uuid;not null;index"`
}

func (n *Notification) IsExpired(now time.Time) bool {
	return now.After(n.Expires)
}
