package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"statuspage/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type SuccessResponse[T any] struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
}

type Error struct {
	Kind    apperror.Kind `json:"kind"`
	Message string        `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"request_id"`
	Error     Error  `json:"error"`
}

func WriteJSON[T any](w http.ResponseWriter, status int, reqID string, message string, data T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	res := SuccessResponse[T]{
		Success:   true,
		RequestID: reqID,
		Message:   message,
		Data:      data,
	}

	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error().Err(err).Msg("error in encoding Success Response and sending it to client")
	}
}

func FromAppError(w http.ResponseWriter, reqID string, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = &apperror.Error{
			Kind:    apperror.Internal,
			Message: "internal server error",
		}
	}

	msg := appErr.Message
	if msg == "" {
		msg = string(appErr.Kind)
	}
	WriteError(w, apperror.GetHTTPStatus(appErr.Kind), reqID, appErr.Kind, msg)
}

func WriteError(w http.ResponseWriter, httpStatusCode int, reqID string, code apperror.Kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)

	res := ErrorResponse{
		Success:   false,
		RequestID: reqID,
		Error: Error{
			Kind:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error().Err(err).Msg("error in encoding Error Response and sending it to client")
	}
}

// DecodeAndValidate reads a JSON body into dst and runs struct validation.
// The returned error is an *apperror.Error of kind InvalidInput.
func DecodeAndValidate(r *http.Request, v *validator.Validate, dst any) error {
	const op string = "handler.request.decode"

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: "malformed JSON body",
			Err:     err,
		}
	}
	if err := v.Struct(dst); err != nil {
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: ValidationMessage(err),
			Err:     err,
		}
	}
	return nil
}

// ValidationMessage flattens validator errors into "field: tag" pairs.
func ValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "invalid request body"
	}
	msg := "validation failed:"
	for i, fe := range ve {
		if i > 0 {
			msg += ","
		}
		msg += " " + fe.Field() + " (" + fe.Tag() + ")"
	}
	return msg
}
