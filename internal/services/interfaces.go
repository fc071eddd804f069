package services

import (
	"context"

	"arrurru-functions/internal/models"
)

// MessageSender delivers a text message to a chat
type MessageSender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// NotificationService defines the interface for access request notifications
type NotificationService interface {
	// SubmitApplication validates the request and posts it to the operators' chat.
	// The message is sent at most once per call.
	SubmitApplication(ctx context.Context, req *models.ApplicationRequest) error
}

// UploadService defines the interface for file uploads
type UploadService interface {
	// UploadFile decodes the file data, writes it to object storage and
	// returns the public CDN URL of the stored object.
	UploadFile(ctx context.Context, req *models.FileUploadRequest) (*models.UploadResult, error)

	// PublicURL returns the CDN URL for a storage key
	PublicURL(key string) string
}
