package models

// Resume - известное системе резюме на площадке провайдера.
// Identity глобально уникален по всем провайдерам. Enabled=false
// означает "забыть": такие записи удаляет cleanup, а следующая
// синхронизация создаст их заново выключенными.
type Resume struct {
	BaseModel
	Identity  string `gorm:"not null;uniqueIndex"`
	Name      string
	Enabled   bool   `gorm:"not null;default:false;index"`
	UserID    string `gorm:"type:uuid;not null;index"`
	AccountID string `gorm:"type:uuid;not null;index"`

	Account *Account `gorm:"foreignKey:AccountID"`
}
