package utils

import (
	"net/http"
	"statuspage/pkg/apperror"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PathUUID parses a chi URL parameter as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      "handler.request.path_uuid",
			Message: "invalid " + name,
			Err:     err,
		}
	}
	return id, nil
}

// QueryInt reads an integer query parameter, returning def when absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      "handler.request.query_int",
			Message: name + " must be an integer",
			Err:     err,
		}
	}
	return v, nil
}

// QueryBool reads a boolean query parameter; absent or unparsable values are false.
func QueryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
