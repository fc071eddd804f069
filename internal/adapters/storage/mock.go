package storage

import (
	"context"
	"sync"
	"time"
)

// MockFileStorage is an in-memory implementation of FileStorage for testing
type MockFileStorage struct {
	mu       sync.RWMutex
	files    map[string]*mockFile
	storeErr error
	puts     int
}

type mockFile struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// NewMockFileStorage creates a new MockFileStorage instance
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{
		files: make(map[string]*mockFile),
	}
}

// Store implements FileStorage.Store
func (m *MockFileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	if key == "" {
		return NewStorageError("Store", key, ErrInvalidKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.storeErr != nil {
		return NewStorageError("Store", key, m.storeErr)
	}

	if !overwriteAllowed(opts) {
		if _, exists := m.files[key]; exists {
			return NewStorageError("Store", key, ErrFileAlreadyExists)
		}
	}

	m.puts++
	m.files[key] = &mockFile{
		data:         append([]byte(nil), data...),
		contentType:  contentTypeOf(opts),
		lastModified: time.Now(),
	}

	return nil
}

// Retrieve implements FileStorage.Retrieve
func (m *MockFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, NewStorageError("Retrieve", key, ErrInvalidKey)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	file, exists := m.files[key]
	if !exists {
		return nil, NewStorageError("Retrieve", key, ErrFileNotFound)
	}

	return append([]byte(nil), file.data...), nil
}

// Delete implements FileStorage.Delete
func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return NewStorageError("Delete", key, ErrInvalidKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[key]; !exists {
		return NewStorageError("Delete", key, ErrFileNotFound)
	}

	delete(m.files, key)
	return nil
}

// Exists implements FileStorage.Exists
func (m *MockFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, NewStorageError("Exists", key, ErrInvalidKey)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.files[key]
	return exists, nil
}

// Close implements FileStorage.Close
func (m *MockFileStorage) Close() error {
	return nil
}

// Test helpers

// FailStoreWith makes every subsequent Store call fail with err. Pass nil to reset.
func (m *MockFileStorage) FailStoreWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeErr = err
}

// ContentType returns the content type recorded for key
func (m *MockFileStorage) ContentType(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if file, ok := m.files[key]; ok {
		return file.contentType
	}
	return ""
}

// PutCount returns how many successful Store calls were made
func (m *MockFileStorage) PutCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// FileCount returns the number of stored objects
func (m *MockFileStorage) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// Reset removes all stored objects
func (m *MockFileStorage) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[string]*mockFile)
	m.puts = 0
	m.storeErr = nil
}
