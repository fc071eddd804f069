package handlers

// @title ARRURRU Functions API
// @version 1.0
// @description Serverless functions behind the ARRURRU access request form: Telegram notifications and file uploads.

// @host localhost:8081
// @BasePath /

// @tag.name send-request
// @tag.description Access request notifications

// @tag.name upload-file
// @tag.description File uploads to object storage
