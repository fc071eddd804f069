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

// NotificationHandler handles access request submissions
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// HandleSubmit godoc
// @Summary Submit an access request
// @Description Validates the form and posts it to the operators' Telegram chat
// @Tags send-request
// @Accept json
// @Produce json
// @Param request body models.ApplicationRequest true "Access request"
// @Success 200 {object} models.SubmitResult
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /send-request [post]
func (h *NotificationHandler) HandleSubmit(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if resp, done := handleMethod(req); done {
		return resp, nil
	}

	var application models.ApplicationRequest
	if err := decodeBody(req.Body, &application); err != nil {
		// malformed JSON is treated as a request without fields
		application = models.ApplicationRequest{}
	}

	err := h.notificationService.SubmitApplication(ctx, &application)
	resp := h.responseFor(err)

	entry := logrus.WithFields(logrus.Fields{
		"handler":     "send-request",
		"request_id":  req.RequestID,
		"status_code": resp.StatusCode,
	})
	if err != nil {
		entry.WithError(err).Warn("Access request rejected")
	} else {
		entry.Info("Access request submitted")
	}

	return resp, nil
}

func (h *NotificationHandler) responseFor(err error) *lambda.Response {
	if err == nil {
		return jsonResponse(http.StatusOK, models.SubmitResult{
			Success: true,
			Message: MsgSubmitSuccess,
		})
	}

	switch {
	case errors.Is(err, services.ErrMissingFields):
		return errorResponse(http.StatusBadRequest, MsgAllFieldsRequired)
	case errors.Is(err, services.ErrNotConfigured):
		return errorResponse(http.StatusInternalServerError, MsgTelegramNotConfigured)
	}

	detail := err.Error()
	var deliveryErr *services.DeliveryError
	if errors.As(err, &deliveryErr) {
		detail = deliveryErr.Detail()
	}
	return errorResponse(http.StatusInternalServerError, MsgSendFailedPrefix+detail)
}
