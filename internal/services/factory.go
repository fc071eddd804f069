package services

import (
	"arrurru-functions/internal/adapters/storage"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	NotificationService NotificationService
	UploadService       UploadService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	// ChatID is the Telegram chat that receives access requests
	ChatID string
	Upload UploadConfig
}

// NewServiceContainer creates a new service container with all services.
// sender and store may be nil when their credentials are not configured.
func NewServiceContainer(sender MessageSender, store storage.FileStorage, config *ServiceConfig) *ServiceContainer {
	if config == nil {
		config = &ServiceConfig{}
	}

	return &ServiceContainer{
		NotificationService: NewNotificationService(sender, config.ChatID),
		UploadService:       NewUploadService(store, config.Upload),
	}
}
