// Package httpx holds the response and request helpers shared by every
// module's handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/apperrors"
	"github.com/go-chi/chi/v5"
)

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes an empty 200 response.
func WriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// StatusFor maps an error kind to its HTTP status. Validation, not-found and
// conflict all answer 400 to keep the single failure status clients test for.
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindNotFound, apperrors.KindConflict:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a plain-text reason. Fatal errors are logged and
// replaced by a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindFatal && logger != nil {
		logger.ErrorContext(r.Context(), "Request failed",
			attr.String("method", r.Method),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
	http.Error(w, apperrors.Message(err), StatusFor(kind))
}

// QueryInt64 reads a required integer query parameter. Lookup ignores case
// so clubleaderid and clubLeaderId are the same parameter.
func QueryInt64(r *http.Request, name string) (int64, error) {
	raw, ok := lookupQuery(r, name)
	if !ok || raw == "" {
		return 0, apperrors.Validation("%s is required", name)
	}
	return parseID(name, raw)
}

// OptionalQueryInt64 returns 0 when the parameter is absent.
func OptionalQueryInt64(r *http.Request, name string) (int64, error) {
	raw, ok := lookupQuery(r, name)
	if !ok || raw == "" {
		return 0, nil
	}
	return parseID(name, raw)
}

// QueryInt64Or returns fallback when the parameter is absent. Handlers use it
// for parameters naming the acting user, which default to the token subject.
func QueryInt64Or(r *http.Request, name string, fallback int64) (int64, error) {
	v, err := OptionalQueryInt64(r, name)
	if err != nil || v != 0 {
		return v, err
	}
	if fallback <= 0 {
		return 0, apperrors.Validation("%s is required", name)
	}
	return fallback, nil
}

// PathInt64 reads an integer chi URL parameter.
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, apperrors.Validation("%s is required", name)
	}
	return parseID(name, raw)
}

func lookupQuery(r *http.Request, name string) (string, bool) {
	q := r.URL.Query()
	if v, ok := q[name]; ok && len(v) > 0 {
		return v[0], true
	}
	for k, v := range q {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("%s must be a positive integer", name)
	}
	return id, nil
}

// Fields is a request body decoded from either JSON or form encoding.
type Fields map[string]string

// DecodeFields reads the request body. JSON bodies must be a flat object;
// anything else is parsed as a (multipart) form.
func DecodeFields(r *http.Request) (Fields, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, apperrors.Validation("malformed JSON body")
		}
		f := make(Fields, len(raw))
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				f[k] = val
			case float64:
				f[k] = strconv.FormatFloat(val, 'f', -1, 64)
			case bool:
				f[k] = strconv.FormatBool(val)
			case nil:
			default:
				return nil, apperrors.Validation("field %s must be a scalar", k)
			}
		}
		return f, nil
	}

	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, apperrors.Validation("malformed form body")
	}
	f := make(Fields, len(r.Form))
	for k, v := range r.Form {
		if len(v) > 0 {
			f[k] = v[0]
		}
	}
	return f, nil
}

// Get looks a field up ignoring case.
func (f Fields) Get(name string) string {
	if v, ok := f[name]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range f {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Required returns the field or a validation error naming it.
func (f Fields) Required(name string) (string, error) {
	v := f.Get(name)
	if v == "" {
		return "", apperrors.Validation("%s is required", name)
	}
	return v, nil
}

// Int64 parses a required integer field.
func (f Fields) Int64(name string) (int64, error) {
	v, err := f.Required(name)
	if err != nil {
		return 0, err
	}
	return parseID(name, v)
}

// OptionalInt64 parses an integer field, returning 0 when absent.
func (f Fields) OptionalInt64(name string) (int64, error) {
	v := f.Get(name)
	if v == "" {
		return 0, nil
	}
	return parseID(name, v)
}
