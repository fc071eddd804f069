package models

import "strings"

// DefaultContentType is stored when the client does not send one
const DefaultContentType = "application/octet-stream"

// FileUploadRequest carries a file encoded as base64
type FileUploadRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	FileData    string `json:"fileData" validate:"required"`
	ContentType string `json:"contentType"`
}

// ResolvedContentType returns ContentType or the default when empty
func (r *FileUploadRequest) ResolvedContentType() string {
	if r.ContentType == "" {
		return DefaultContentType
	}
	return r.ContentType
}

// UploadResult is the success body of the upload-file function
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

var fileNameReplacer = strings.NewReplacer(" ", "_", "(", "", ")", "")

// SanitizeFileName replaces spaces with underscores and drops parentheses.
// "My File (1).png" becomes "My_File_1.png".
func SanitizeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}

// ObjectKey builds the storage key for a file name under prefix
func ObjectKey(prefix, fileName string) string {
	return prefix + SanitizeFileName(fileName)
}
