package models

// User не имеет собственных атрибутов: личность пользователя целиком
// определяется привязанными аккаунтами провайдеров.
type User struct {
	BaseModel

	// Relations
	Accounts      []Account      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Resumes       []Resume       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Confirmations []Confirmation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Subscriptions []Subscription `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
