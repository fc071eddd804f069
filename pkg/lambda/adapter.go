package lambda

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// internalErrorBody is returned when a handler fails without producing a response.
const internalErrorBody = `{"error": "Internal server error"}`

// FromAPIGateway converts an API Gateway proxy event into a generic Request.
// The trigger may omit the method; such events are treated as POST.
// A base64 encoded event body is decoded; if that fails the raw body is kept.
func FromAPIGateway(event events.APIGatewayProxyRequest) *Request {
	method := event.HTTPMethod
	if method == "" {
		method = http.MethodPost
	}

	requestID := event.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(event.Body); err == nil {
			body = decoded
		}
	}

	return &Request{
		RequestID:   requestID,
		Method:      method,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
	}
}

// ToAPIGateway converts a generic Response into an API Gateway proxy response.
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      r.StatusCode,
		Headers:         r.Headers,
		Body:            string(r.Body),
		IsBase64Encoded: false,
	}
}

// Adapt wraps a HandlerFunc so it can be passed to the Lambda runtime.
// A handler error never reaches the runtime; it becomes a 500 JSON envelope.
func Adapt(h HandlerFunc) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req := FromAPIGateway(event)

		resp, err := h(ctx, req)
		if err != nil || resp == nil {
			logrus.WithFields(logrus.Fields{
				"request_id": req.RequestID,
				"method":     req.Method,
				"path":       req.Path,
				"error":      err,
			}).Error("Handler failed without a response")

			return InternalError().ToAPIGateway(), nil
		}

		return resp.ToAPIGateway(), nil
	}
}

// InternalError builds the generic 500 response used when nothing better is available.
func InternalError() *Response {
	return &Response{
		StatusCode: http.StatusInternalServerError,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: []byte(internalErrorBody),
	}
}
