package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrurru-functions/internal/adapters/storage"
	"arrurru-functions/internal/metrics"
	"arrurru-functions/internal/models"
)

func testUploadConfig() UploadConfig {
	return UploadConfig{
		KeyPrefix: "arrurru/",
		CDNHost:   "cdn.poehali.dev",
		ProjectID: "AKIA123",
	}
}

func TestUploadService_UploadFile(t *testing.T) {
	store := storage.NewMockFileStorage()
	svc := NewUploadService(store, testUploadConfig())

	result, err := svc.UploadFile(context.Background(), &models.FileUploadRequest{
		FileName:    "My File (1).png",
		FileData:    base64.StdEncoding.EncodeToString([]byte("png-bytes")),
		ContentType: "image/png",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.poehali.dev/projects/AKIA123/bucket/arrurru/My_File_1.png", result.URL)
	assert.Equal(t, "My File (1).png", result.FileName)

	data, err := store.Retrieve(context.Background(), "arrurru/My_File_1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", store.ContentType("arrurru/My_File_1.png"))
}

func TestUploadService_DefaultContentType(t *testing.T) {
	store := storage.NewMockFileStorage()
	svc := NewUploadService(store, testUploadConfig())

	_, err := svc.UploadFile(context.Background(), &models.FileUploadRequest{
		FileName: "blob",
		FileData: base64.StdEncoding.EncodeToString([]byte{0x00, 0x01}),
	})
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", store.ContentType("arrurru/blob"))
}

func TestUploadService_OverwritesSameKey(t *testing.T) {
	store := storage.NewMockFileStorage()
	svc := NewUploadService(store, testUploadConfig())

	for _, content := range []string{"first", "second"} {
		_, err := svc.UploadFile(context.Background(), &models.FileUploadRequest{
			FileName: "a b.txt",
			FileData: base64.StdEncoding.EncodeToString([]byte(content)),
		})
		require.NoError(t, err)
	}

	data, err := store.Retrieve(context.Background(), "arrurru/a_b.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, 2, store.PutCount())
	assert.Equal(t, 1, store.FileCount())
}

func TestUploadService_MissingFields(t *testing.T) {
	store := storage.NewMockFileStorage()
	svc := NewUploadService(store, testUploadConfig())

	tests := []struct {
		name string
		req  *models.FileUploadRequest
	}{
		{"nil request", nil},
		{"no file name", &models.FileUploadRequest{FileData: "aGk="}},
		{"no file data", &models.FileUploadRequest{FileName: "a.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadFile(context.Background(), tt.req)
			assert.True(t, errors.Is(err, ErrMissingFields))
		})
	}
	assert.Equal(t, 0, store.PutCount())
}

func TestUploadService_NotConfigured(t *testing.T) {
	svc := NewUploadService(nil, testUploadConfig())

	_, err := svc.UploadFile(context.Background(), &models.FileUploadRequest{FileName: "a", FileData: "aGk="})
	assert.Equal(t, ErrNotConfigured, err)

	_, err = svc.UploadFile(context.Background(), &models.FileUploadRequest{FileName: "a"})
	assert.True(t, errors.Is(err, ErrMissingFields))
}

func TestUploadService_InvalidBase64(t *testing.T) {
	store := storage.NewMockFileStorage()
	svc := NewUploadService(store, testUploadConfig())

	_, err := svc.UploadFile(context.Background(), &models.FileUploadRequest{FileName: "a", FileData: "not base64!!"})
	assert.True(t, errors.Is(err, ErrInvalidFileData))
	assert.Equal(t, 0, store.FileCount())
}

func TestUploadService_StorageFailure(t *testing.T) {
	store := storage.NewMockFileStorage()
	store.FailStoreWith(errors.New("AccessDenied"))
	svc := NewUploadService(store, testUploadConfig())

	_, err := svc.UploadFile(context.Background(), &models.FileUploadRequest{FileName: "a", FileData: "aGk="})
	require.Error(t, err)

	var deliveryErr *DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, "storage", deliveryErr.Target)
	assert.Contains(t, deliveryErr.Detail(), "AccessDenied")
}

func TestDecodeFileData(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "aGVsbG8=", "hello", false},
		{"data url", "data:text/plain;base64,aGVsbG8=", "hello", false},
		{"wrapped lines", "aGVs\nbG8=\n", "hello", false},
		{"empty after prefix", "data:text/plain;base64,", "", false},
		{"invalid characters", "@@@", "", true},
		{"bad padding", "aGVsbG8", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFileData(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidFileData))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestUploadService_PublicURL(t *testing.T) {
	svc := NewUploadService(nil, testUploadConfig())
	assert.Equal(t, "https://cdn.poehali.dev/projects/AKIA123/bucket/arrurru/x.pdf", svc.PublicURL("arrurru/x.pdf"))
}

func TestNewServiceContainer(t *testing.T) {
	c := NewServiceContainer(nil, nil, nil)
	require.NotNil(t, c.NotificationService)
	require.NotNil(t, c.UploadService)

	err := c.NotificationService.SubmitApplication(context.Background(), validApplication())
	assert.Equal(t, ErrNotConfigured, err)
}

func TestUploadService_Metrics(t *testing.T) {
	bytesBefore := testutil.ToFloat64(metrics.UploadBytesTotal)
	invalid := metrics.UploadsTotal.WithLabelValues(metrics.ResultInvalid)
	invalidBefore := testutil.ToFloat64(invalid)

	svc := NewUploadService(storage.NewMockFileStorage(), testUploadConfig())

	_, err := svc.UploadFile(context.Background(), &models.FileUploadRequest{
		FileName: "a",
		FileData: base64.StdEncoding.EncodeToString([]byte("12345")),
	})
	require.NoError(t, err)

	_, err = svc.UploadFile(context.Background(), &models.FileUploadRequest{FileName: "a", FileData: "!!"})
	require.Error(t, err)

	assert.Equal(t, bytesBefore+5, testutil.ToFloat64(metrics.UploadBytesTotal))
	assert.Equal(t, invalidBefore+1, testutil.ToFloat64(invalid))
}
