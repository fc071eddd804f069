package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
	StorageTypeMock  StorageType = "mock"
)

// Factory creates FileStorage instances based on configuration
type Factory struct {
	httpClient aws.HTTPClient
}

// NewFactory creates a new storage factory. httpClient is used for S3 and may be nil.
func NewFactory(httpClient aws.HTTPClient) *Factory {
	return &Factory{
		httpClient: httpClient,
	}
}

// Create creates a FileStorage instance based on the provided configuration
func (f *Factory) Create(ctx context.Context, config *StorageConfig) (FileStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	var storage FileStorage
	var err error

	switch StorageType(strings.ToLower(config.Type)) {
	case StorageTypeLocal:
		storage, err = f.createLocalStorage(config)
	case StorageTypeS3, "":
		storage, err = f.createS3Storage(ctx, config)
	case StorageTypeMock:
		storage = NewMockFileStorage()
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
	}

	return storage, nil
}

func (f *Factory) createLocalStorage(config *StorageConfig) (FileStorage, error) {
	basePath := config.BasePath
	if basePath == "" {
		basePath = "./storage"
	}
	return NewLocalFileStorage(basePath)
}

func (f *Factory) createS3Storage(ctx context.Context, config *StorageConfig) (FileStorage, error) {
	var opts []S3Option
	if f.httpClient != nil {
		opts = append(opts, WithS3HTTPClient(f.httpClient))
	}
	return NewS3FileStorage(ctx, config, opts...)
}

// CreateFromConfig is a convenience function to create storage from config
func CreateFromConfig(ctx context.Context, config *StorageConfig) (FileStorage, error) {
	return NewFactory(nil).Create(ctx, config)
}
