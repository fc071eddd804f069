package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3FileStorage implements FileStorage on top of an S3-compatible object store
type S3FileStorage struct {
	client *s3.Client
	bucket string
}

// S3Option customises the underlying SDK configuration
type S3Option func(*s3Options)

type s3Options struct {
	httpClient aws.HTTPClient
}

// WithS3HTTPClient sets the HTTP client used by the SDK. AWS_CA_BUNDLE
// only works with an *awshttp.BuildableClient.
func WithS3HTTPClient(client aws.HTTPClient) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// NewS3FileStorage creates an S3 client with static credentials from config.
// A custom endpoint is used as-is, so non-AWS stores work with path-style addressing.
func NewS3FileStorage(ctx context.Context, config *StorageConfig, opts ...S3Option) (*S3FileStorage, error) {
	if config.AccessKeyID == "" || config.SecretAccessKey == "" {
		return nil, NewStorageError("NewS3FileStorage", "", ErrMissingCredentials)
	}
	if config.Bucket == "" {
		return nil, NewStorageError("NewS3FileStorage", "", errors.New("bucket is required"))
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	region := config.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		),
	}
	if options.httpClient != nil {
		loadOpts = append(loadOpts, awsconfig.WithHTTPClient(options.httpClient))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, NewStorageError("NewS3FileStorage", "", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
		o.UsePathStyle = config.UsePathStyle
	})

	return &S3FileStorage{
		client: client,
		bucket: config.Bucket,
	}, nil
}

// Store implements FileStorage.Store with a single PutObject call
func (s *S3FileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	if key == "" {
		return NewStorageError("Store", key, ErrInvalidKey)
	}

	if !overwriteAllowed(opts) {
		exists, err := s.Exists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			return NewStorageError("Store", key, ErrFileAlreadyExists)
		}
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeOf(opts)),
	}
	if opts != nil && len(opts.Metadata) > 0 {
		input.Metadata = opts.Metadata
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return NewStorageError("Store", key, err)
	}

	return nil
}

// Retrieve implements FileStorage.Retrieve
func (s *S3FileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, NewStorageError("Retrieve", key, ErrInvalidKey)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, NewStorageError("Retrieve", key, ErrFileNotFound)
		}
		return nil, NewStorageError("Retrieve", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, NewStorageError("Retrieve", key, err)
	}

	return data, nil
}

// Delete implements FileStorage.Delete
func (s *S3FileStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return NewStorageError("Delete", key, ErrInvalidKey)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return NewStorageError("Delete", key, err)
	}

	return nil
}

// Exists implements FileStorage.Exists using HeadObject
func (s *S3FileStorage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, NewStorageError("Exists", key, ErrInvalidKey)
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, NewStorageError("Exists", key, err)
	}

	return true, nil
}

// Close implements FileStorage.Close
func (s *S3FileStorage) Close() error {
	return nil
}

func isS3NotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == http.StatusNotFound
	}

	return false
}
