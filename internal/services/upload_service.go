package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"arrurru-functions/internal/adapters/storage"
	"arrurru-functions/internal/metrics"
	"arrurru-functions/internal/models"
)

// UploadConfig holds the settings for building object keys and public URLs
type UploadConfig struct {
	KeyPrefix string
	CDNHost   string
	// ProjectID is the path segment identifying the project on the CDN.
	// The hosting platform uses the storage access key ID for it.
	ProjectID string
}

// uploadService implements the UploadService interface
type uploadService struct {
	store     storage.FileStorage
	config    UploadConfig
	validator *validator.Validate
}

// NewUploadService creates an upload service. A nil store is allowed;
// uploads then fail with ErrNotConfigured.
func NewUploadService(store storage.FileStorage, config UploadConfig) UploadService {
	return &uploadService{
		store:     store,
		config:    config,
		validator: validator.New(),
	}
}

// UploadFile stores the decoded file under the configured prefix. An existing
// object with the same key is overwritten.
func (s *uploadService) UploadFile(ctx context.Context, req *models.FileUploadRequest) (*models.UploadResult, error) {
	if req == nil {
		req = &models.FileUploadRequest{}
	}

	if err := s.validator.Struct(req); err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, fmt.Errorf("%w: %v", ErrMissingFields, err)
	}

	if s.store == nil {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultNotConfigured).Inc()
		return nil, ErrNotConfigured
	}

	data, err := DecodeFileData(req.FileData)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	key := models.ObjectKey(s.config.KeyPrefix, req.FileName)

	start := time.Now()
	err = s.store.Store(ctx, key, data, &storage.StoreOptions{
		ContentType: req.ResolvedContentType(),
		Overwrite:   true,
	})
	metrics.ExternalCallDuration.WithLabelValues("storage").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		logrus.WithError(err).WithField("key", key).Warn("Failed to store uploaded file")
		return nil, &DeliveryError{Target: "storage", Err: err}
	}

	metrics.UploadsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.UploadBytesTotal.Add(float64(len(data)))
	logrus.WithFields(logrus.Fields{
		"key":  key,
		"size": len(data),
	}).Info("File uploaded")

	return &models.UploadResult{
		URL:      s.PublicURL(key),
		FileName: req.FileName,
	}, nil
}

// PublicURL returns https://<cdn>/projects/<project>/bucket/<key>
func (s *uploadService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s/projects/%s/bucket/%s", s.config.CDNHost, s.config.ProjectID, key)
}

// DecodeFileData decodes standard base64. A data URL prefix such as
// "data:image/png;base64," and embedded whitespace are tolerated.
func DecodeFileData(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		if i := strings.Index(encoded, ";base64,"); i >= 0 {
			encoded = encoded[i+len(";base64,"):]
		}
	}

	encoded = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, encoded)

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileData, err)
	}
	return data, nil
}
