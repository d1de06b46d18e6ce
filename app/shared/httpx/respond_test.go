package httpx

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/campus-clubs/app/shared/apperrors"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "validation", err: apperrors.Validation("Email is required"), wantCode: http.StatusBadRequest, wantBody: "Email is required"},
		{name: "not found", err: apperrors.NotFound("club not found"), wantCode: http.StatusBadRequest, wantBody: "club not found"},
		{name: "conflict", err: apperrors.Conflict("You Already have a club"), wantCode: http.StatusBadRequest, wantBody: "You Already have a club"},
		{name: "forbidden", err: apperrors.Forbidden("not allowed"), wantCode: http.StatusForbidden, wantBody: "not allowed"},
		{name: "unauthorized", err: apperrors.Unauthorized("missing token"), wantCode: http.StatusUnauthorized, wantBody: "missing token"},
		{name: "fatal hides detail", err: errors.New("pg: connection refused"), wantCode: http.StatusInternalServerError, wantBody: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(rec, req, nil, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestQueryInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?clubleaderid=12&bad=x&neg=-1", nil)

	id, err := QueryInt64(req, "clubLeaderId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = QueryInt64(req, "bad")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = QueryInt64(req, "neg")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = QueryInt64(req, "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	id, err = OptionalQueryInt64(req, "missing")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestQueryInt64Or(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?studentId=5&bad=x", nil)

	id, err := QueryInt64Or(req, "studentId", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	id, err = QueryInt64Or(req, "clubLeaderId", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	_, err = QueryInt64Or(req, "clubLeaderId", 0)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = QueryInt64Or(req, "bad", 9)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestPathInt64(t *testing.T) {
	r := chi.NewRouter()
	var got int64
	r.Get("/join/{clubId}", func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = PathInt64(r, "clubId")
		require.NoError(t, err)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/join/9", nil))
	assert.Equal(t, int64(9), got)
}

func TestDecodeFields_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"clubName":" Chess ","clubLeaderId":3,"desc":null}`))
	req.Header.Set("Content-Type", "application/json")

	f, err := DecodeFields(req)
	require.NoError(t, err)
	assert.Equal(t, "Chess", f.Get("clubname"))

	id, err := f.Int64("clubLeaderId")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	_, err = f.Required("desc")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestDecodeFields_NestedJSONRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"clubName":{"x":1}}`))
	req.Header.Set("Content-Type", "application/json")

	_, err := DecodeFields(req)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestDecodeFields_Multipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("email", "s@uni.edu"))
	require.NoError(t, mw.WriteField("password", "Secret1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	f, err := DecodeFields(req)
	require.NoError(t, err)
	assert.Equal(t, "s@uni.edu", f.Get("email"))
	assert.Equal(t, "Secret1", f.Get("Password"))
}

func TestDecodeFields_URLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("clubId=4&clubName=Go"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f, err := DecodeFields(req)
	require.NoError(t, err)
	id, err := f.OptionalInt64("clubId")
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}
