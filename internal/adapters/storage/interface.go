package storage

import (
	"context"
)

// StoreOptions provides options for storing files
type StoreOptions struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Overwrite   bool              `json:"overwrite,omitempty"`
}

// FileStorage provides an abstraction for object operations.
// Implementations exist for S3-compatible stores, the local filesystem and memory.
type FileStorage interface {
	// Store saves data under key
	Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error

	// Retrieve gets an object by its key
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes an object by its key
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists at the given key
	Exists(ctx context.Context, key string) (bool, error)

	// Close cleans up any resources used by the storage implementation
	Close() error
}

// StorageConfig represents configuration for storage providers
type StorageConfig struct {
	Type            string            `json:"type" yaml:"type"`           // "local", "s3" or "mock"
	BasePath        string            `json:"base_path" yaml:"base_path"` // For local storage
	Bucket          string            `json:"bucket" yaml:"bucket"`
	Region          string            `json:"region" yaml:"region"`
	Endpoint        string            `json:"endpoint" yaml:"endpoint"`
	AccessKeyID     string            `json:"-" yaml:"-"`
	SecretAccessKey string            `json:"-" yaml:"-"`
	UsePathStyle    bool              `json:"use_path_style" yaml:"use_path_style"`
	Options         map[string]string `json:"options" yaml:"options"` // Provider-specific options
}

// DefaultContentType is used when the caller does not supply one
const DefaultContentType = "application/octet-stream"

func contentTypeOf(opts *StoreOptions) string {
	if opts != nil && opts.ContentType != "" {
		return opts.ContentType
	}
	return DefaultContentType
}

func overwriteAllowed(opts *StoreOptions) bool {
	return opts == nil || opts.Overwrite
}
