package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"

	"arrurru-functions/pkg/lambda"
)

const (
	allowedMethods  = "POST, OPTIONS"
	allowedHeaders  = "Content-Type"
	preflightMaxAge = "86400"
)

// baseHeaders returns the headers every non-preflight response carries
func baseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// preflightResponse answers a CORS preflight with an empty body
func preflightResponse() *lambda.Response {
	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": allowedMethods,
			"Access-Control-Allow-Headers": allowedHeaders,
			"Access-Control-Max-Age":       preflightMaxAge,
		},
		Body: []byte{},
	}
}

// jsonResponse serializes v as the response body
func jsonResponse(statusCode int, v interface{}) *lambda.Response {
	body, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode response body")
		return lambda.InternalError()
	}

	return &lambda.Response{
		StatusCode: statusCode,
		Headers:    baseHeaders(),
		Body:       body,
	}
}

func errorResponse(statusCode int, message string) *lambda.Response {
	return jsonResponse(statusCode, ErrorResponse{Error: message})
}

// handleMethod answers OPTIONS and rejects anything but POST.
// The returned bool is false when the request should be processed.
func handleMethod(req *lambda.Request) (*lambda.Response, bool) {
	switch req.Method {
	case http.MethodOptions:
		return preflightResponse(), true
	case http.MethodPost, "":
		return nil, false
	default:
		return errorResponse(http.StatusMethodNotAllowed, MsgMethodNotAllowed), true
	}
}

// decodeBody unmarshals a JSON object body into the struct pointed to by v.
// Keys match json tags exactly; "FULLNAME" does not fill fullName.
// An empty body is not an error.
func decodeBody(body []byte, v interface{}) error {
	if len(body) == 0 {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}

	known := jsonFieldNames(v)
	for key := range raw {
		if !known[key] {
			delete(raw, key)
		}
	}

	exact, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(exact, v)
}

// jsonFieldNames lists the json keys of the struct v points to
func jsonFieldNames(v interface{}) map[string]bool {
	names := make(map[string]bool)

	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return names
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		switch name {
		case "-":
			continue
		case "":
			name = field.Name
		}
		names[name] = true
	}
	return names
}
