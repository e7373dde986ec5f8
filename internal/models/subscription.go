package models

// Каналы доставки уведомлений.
const (
	ChannelTelegram = "telegram"
	ChannelEmail    = "email"
)

// Subscription - согласие пользователя получать уведомления в канале
// по конкретному адресу (chat id, email). Включать/выключать можно
// только подтвержденную подписку; доставка идет только по
// enabled+confirmed.
type Subscription struct {
	BaseModel
	Channel   string `gorm:"not null;uniqueIndex:uniq_subscription_channel"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:uniq_subscription_channel;index"`
	Address   string `gorm:"not null"`
	Enabled   bool   `gorm:"not null;default:false"`
	Confirmed bool   `gorm:"not null;default:false"`
}

// Active - подписка, по которой разрешена доставка.
func (s *Subscription) Active() bool {
	return s.Enabled && s.Confirmed
}
