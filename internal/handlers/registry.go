package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ResumeHandler       *ResumeHandler
	NotificationHandler *NotificationHandler
	StatusHandler       *StatusHandler
	BotHandler          *BotHandler
}
