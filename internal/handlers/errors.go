package handlers

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Response messages returned to the front end
const (
	MsgMethodNotAllowed = "Method not allowed"

	MsgAllFieldsRequired     = "Все поля обязательны для заполнения"
	MsgTelegramNotConfigured = "Telegram не настроен"
	MsgSendFailedPrefix      = "Ошибка отправки: "
	MsgSubmitSuccess         = "Заявка успешно отправлена"

	MsgUploadFieldsRequired = "fileName and fileData are required"
	MsgInvalidFileData      = "fileData is not valid base64"
	MsgStorageNotConfigured = "Storage is not configured"
	MsgUploadFailedPrefix   = "Upload failed: "
)
