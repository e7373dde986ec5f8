package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ResumeService       ResumeService
	NotificationService NotificationService
	StatusService       StatusService
}
