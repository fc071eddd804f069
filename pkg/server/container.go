package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/sirupsen/logrus"

	"arrurru-functions/internal/adapters/storage"
	"arrurru-functions/internal/adapters/telegram"
	"arrurru-functions/internal/config"
	"arrurru-functions/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config              *config.Config
	NotificationService services.NotificationService
	UploadService       services.UploadService

	storage storage.FileStorage
}

// NewContainer creates a new dependency injection container. Missing Telegram
// or storage credentials, or a storage client that cannot be built, do not
// fail construction; the affected service answers "not configured" per
// request instead.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClient.Timeout}

	var sender services.MessageSender
	if cfg.Telegram.BotToken != "" {
		sender = telegram.NewClient(
			cfg.Telegram.BotToken,
			telegram.WithAPIURL(cfg.Telegram.APIURL),
			telegram.WithHTTPClient(httpClient),
		)
	}
	if !cfg.Telegram.IsConfigured() {
		logrus.Warn("Telegram bot token or chat id is not set; send-request will answer 500")
	}

	s3Client := awshttp.NewBuildableClient().WithTimeout(cfg.HTTPClient.Timeout)
	fileStorage, err := newStorage(context.Background(), cfg.Storage, s3Client)
	if err != nil {
		logrus.WithError(err).WithField("storage_type", cfg.Storage.Type).
			Error("Failed to create storage; upload-file will answer 500")
		fileStorage = nil
	}

	serviceContainer := services.NewServiceContainer(sender, fileStorage, &services.ServiceConfig{
		ChatID: cfg.Telegram.ChatID,
		Upload: services.UploadConfig{
			KeyPrefix: cfg.Storage.KeyPrefix,
			CDNHost:   cfg.Storage.CDNHost,
			ProjectID: cfg.Storage.AccessKeyID,
		},
	})

	return &Container{
		Config:              cfg,
		NotificationService: serviceContainer.NotificationService,
		UploadService:       serviceContainer.UploadService,
		storage:             fileStorage,
	}, nil
}

// newStorage returns a nil FileStorage when S3 is selected without credentials
func newStorage(ctx context.Context, cfg config.StorageConfig, httpClient aws.HTTPClient) (storage.FileStorage, error) {
	storageType := storage.StorageType(strings.ToLower(cfg.Type))
	if (storageType == storage.StorageTypeS3 || storageType == "") && !cfg.HasCredentials() {
		logrus.Warn("Storage access keys are not set; upload-file will answer 500")
		return nil, nil
	}

	return storage.NewFactory(httpClient).Create(ctx, &storage.StorageConfig{
		Type:            cfg.Type,
		BasePath:        cfg.LocalPath,
		Bucket:          cfg.Bucket,
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		UsePathStyle:    cfg.UsePathStyle,
	})
}

// Storage returns the file storage, or nil when it is not configured
func (c *Container) Storage() storage.FileStorage {
	return c.storage
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.storage != nil {
		if err := c.storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
