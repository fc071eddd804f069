package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMockFileStorage_Store(t *testing.T) {
	storage := NewMockFileStorage()
	defer storage.Close()

	ctx := context.Background()
	testData := []byte("test file content")

	tests := []struct {
		name            string
		key             string
		data            []byte
		opts            *StoreOptions
		wantContentType string
		wantErr         bool
	}{
		{
			name:            "store valid file",
			key:             "arrurru/file.txt",
			data:            testData,
			opts:            nil,
			wantContentType: DefaultContentType,
		},
		{
			name:            "store with content type",
			key:             "arrurru/typed.json",
			data:            []byte(`{"test": true}`),
			opts:            &StoreOptions{ContentType: "application/json", Overwrite: true},
			wantContentType: "application/json",
		},
		{
			name:    "empty key",
			key:     "",
			data:    testData,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storage.Store(ctx, tt.key, tt.data, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Store() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			retrieved, err := storage.Retrieve(ctx, tt.key)
			if err != nil {
				t.Fatalf("Failed to retrieve file: %v", err)
			}
			if string(retrieved) != string(tt.data) {
				t.Errorf("Retrieved content doesn't match: got %s, want %s", retrieved, tt.data)
			}
			if got := storage.ContentType(tt.key); got != tt.wantContentType {
				t.Errorf("ContentType() = %q, want %q", got, tt.wantContentType)
			}
		})
	}
}

func TestMockFileStorage_StoreOverwrite(t *testing.T) {
	storage := NewMockFileStorage()
	ctx := context.Background()
	key := "arrurru/overwrite.txt"

	if err := storage.Store(ctx, key, []byte("original"), nil); err != nil {
		t.Fatalf("Failed to store original file: %v", err)
	}

	// nil options overwrite silently
	if err := storage.Store(ctx, key, []byte("replaced"), nil); err != nil {
		t.Fatalf("Store with nil options should overwrite: %v", err)
	}

	data, _ := storage.Retrieve(ctx, key)
	if string(data) != "replaced" {
		t.Errorf("Expected replaced content, got %q", data)
	}
	if storage.FileCount() != 1 {
		t.Errorf("Expected 1 file, got %d", storage.FileCount())
	}
	if storage.PutCount() != 2 {
		t.Errorf("Expected 2 puts, got %d", storage.PutCount())
	}

	err := storage.Store(ctx, key, []byte("refused"), &StoreOptions{Overwrite: false})
	if !IsAlreadyExists(err) {
		t.Errorf("Expected AlreadyExists error, got: %v", err)
	}
}

func TestMockFileStorage_RetrieveAndDeleteMissing(t *testing.T) {
	storage := NewMockFileStorage()
	ctx := context.Background()

	if _, err := storage.Retrieve(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("Retrieve() expected not found, got %v", err)
	}
	if err := storage.Delete(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("Delete() expected not found, got %v", err)
	}

	exists, err := storage.Exists(ctx, "missing")
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v; want false, nil", exists, err)
	}
}

func TestMockFileStorage_FailStoreWith(t *testing.T) {
	storage := NewMockFileStorage()
	ctx := context.Background()
	boom := errors.New("connection reset by peer")

	storage.FailStoreWith(boom)
	err := storage.Store(ctx, "arrurru/a.png", []byte("x"), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Store() error = %v, want wrapped %v", err, boom)
	}

	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "Store" || storageErr.Key != "arrurru/a.png" {
		t.Errorf("expected StorageError with op and key, got %#v", err)
	}

	storage.Reset()
	if err := storage.Store(ctx, "arrurru/a.png", []byte("x"), nil); err != nil {
		t.Errorf("Store() after Reset failed: %v", err)
	}
}
