package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrurru-functions/internal/metrics"
	"arrurru-functions/internal/models"
)

type fakeSender struct {
	calls  int
	chatID string
	text   string
	err    error
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID, text string) error {
	f.calls++
	f.chatID = chatID
	f.text = text
	return f.err
}

func validApplication() *models.ApplicationRequest {
	return &models.ApplicationRequest{
		FullName:   "Иван Петров",
		Phone:      "+7 900 000-00-00",
		Email:      "ivan@example.com",
		Restaurant: "Сыроварня",
		Position:   "Шеф",
	}
}

func TestNotificationService_SubmitApplication(t *testing.T) {
	sender := &fakeSender{}
	svc := NewNotificationService(sender, "-100500")

	req := validApplication()
	require.NoError(t, svc.SubmitApplication(context.Background(), req))

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "-100500", sender.chatID)
	assert.Equal(t, req.NotificationText(), sender.text)
}

func TestNotificationService_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.ApplicationRequest)
	}{
		{"no full name", func(r *models.ApplicationRequest) { r.FullName = "" }},
		{"no phone", func(r *models.ApplicationRequest) { r.Phone = "" }},
		{"no email", func(r *models.ApplicationRequest) { r.Email = "" }},
		{"no restaurant", func(r *models.ApplicationRequest) { r.Restaurant = "" }},
		{"no position", func(r *models.ApplicationRequest) { r.Position = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			svc := NewNotificationService(sender, "1")

			req := validApplication()
			tt.mutate(req)

			err := svc.SubmitApplication(context.Background(), req)
			assert.True(t, errors.Is(err, ErrMissingFields))
			assert.Equal(t, 0, sender.calls)
		})
	}

	t.Run("nil request", func(t *testing.T) {
		err := NewNotificationService(&fakeSender{}, "1").SubmitApplication(context.Background(), nil)
		assert.True(t, errors.Is(err, ErrMissingFields))
	})
}

func TestNotificationService_NotConfigured(t *testing.T) {
	t.Run("no sender", func(t *testing.T) {
		err := NewNotificationService(nil, "1").SubmitApplication(context.Background(), validApplication())
		assert.Equal(t, ErrNotConfigured, err)
	})

	t.Run("no chat", func(t *testing.T) {
		sender := &fakeSender{}
		err := NewNotificationService(sender, "").SubmitApplication(context.Background(), validApplication())
		assert.Equal(t, ErrNotConfigured, err)
		assert.Equal(t, 0, sender.calls)
	})

	t.Run("validation runs first", func(t *testing.T) {
		err := NewNotificationService(nil, "").SubmitApplication(context.Background(), &models.ApplicationRequest{})
		assert.True(t, errors.Is(err, ErrMissingFields))
	})
}

func TestNotificationService_DeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("Telegram API error: 400")}
	svc := NewNotificationService(sender, "1")

	err := svc.SubmitApplication(context.Background(), validApplication())
	require.Error(t, err)

	var deliveryErr *DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, "telegram", deliveryErr.Target)
	assert.Equal(t, "Telegram API error: 400", deliveryErr.Detail())
	assert.Equal(t, 1, sender.calls)
}

func TestNotificationService_Metrics(t *testing.T) {
	success := metrics.NotificationsTotal.WithLabelValues(metrics.ResultSuccess)
	failed := metrics.NotificationsTotal.WithLabelValues(metrics.ResultFailed)
	successBefore := testutil.ToFloat64(success)
	failedBefore := testutil.ToFloat64(failed)

	require.NoError(t, NewNotificationService(&fakeSender{}, "1").SubmitApplication(context.Background(), validApplication()))
	require.Error(t, NewNotificationService(&fakeSender{err: errors.New("down")}, "1").SubmitApplication(context.Background(), validApplication()))

	assert.Equal(t, successBefore+1, testutil.ToFloat64(success))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}
