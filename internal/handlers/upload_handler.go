package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"arrurru-functions/internal/models"
	"arrurru-functions/internal/services"
	"arrurru-functions/pkg/lambda"
)

// UploadHandler handles base64 file uploads
type UploadHandler struct {
	uploadService services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// HandleUpload godoc
// @Summary Upload a file
// @Description Stores a base64 encoded file in object storage and returns its CDN URL. Files with the same name are overwritten.
// @Tags upload-file
// @Accept json
// @Produce json
// @Param request body models.FileUploadRequest true "File"
// @Success 200 {object} models.UploadResult
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /upload-file [post]
func (h *UploadHandler) HandleUpload(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if resp, done := handleMethod(req); done {
		return resp, nil
	}

	var upload models.FileUploadRequest
	if err := decodeBody(req.Body, &upload); err != nil {
		// malformed JSON is treated as a request without fields
		upload = models.FileUploadRequest{}
	}

	result, err := h.uploadService.UploadFile(ctx, &upload)
	if err != nil {
		resp := uploadErrorResponse(err)
		logrus.WithFields(logrus.Fields{
			"handler":     "upload-file",
			"request_id":  req.RequestID,
			"status_code": resp.StatusCode,
		}).WithError(err).Warn("Upload rejected")
		return resp, nil
	}

	logrus.WithFields(logrus.Fields{
		"handler":    "upload-file",
		"request_id": req.RequestID,
		"url":        result.URL,
	}).Info("Upload stored")

	return jsonResponse(http.StatusOK, result), nil
}

func uploadErrorResponse(err error) *lambda.Response {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return errorResponse(http.StatusBadRequest, MsgUploadFieldsRequired)
	case errors.Is(err, services.ErrInvalidFileData):
		return errorResponse(http.StatusBadRequest, MsgInvalidFileData)
	case errors.Is(err, services.ErrNotConfigured):
		return errorResponse(http.StatusInternalServerError, MsgStorageNotConfigured)
	}

	detail := err.Error()
	var deliveryErr *services.DeliveryError
	if errors.As(err, &deliveryErr) {
		detail = deliveryErr.Detail()
	}
	return errorResponse(http.StatusInternalServerError, MsgUploadFailedPrefix+detail)
}
