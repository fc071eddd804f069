package models

import (
	"fmt"
	"html"
)

// ApplicationRequest is an access request submitted from the ARRURRU front end.
// Every field is required; no format checks are applied.
type ApplicationRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Restaurant string `json:"restaurant" validate:"required"`
	Position   string `json:"position" validate:"required"`
}

const applicationTemplate = `
🔔 Новая заявка на доступ к ARRURRU

👤 ФИО: %s
📱 Телефон: %s
📧 Email: %s
🏢 Ресторан/Проект: %s
💼 Должность: %s
`

// NotificationText renders the message posted to the operators' chat.
// Fields are HTML-escaped because the message is sent with parse_mode HTML.
func (r *ApplicationRequest) NotificationText() string {
	return fmt.Sprintf(applicationTemplate,
		html.EscapeString(r.FullName),
		html.EscapeString(r.Phone),
		html.EscapeString(r.Email),
		html.EscapeString(r.Restaurant),
		html.EscapeString(r.Position),
	)
}

// SubmitResult is the success body of the send-request function
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
