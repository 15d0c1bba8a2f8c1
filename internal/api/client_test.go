package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens — источник токенов с фиксированным значением.
type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, tok string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, srv.URL, 5*time.Second, staticTokens(tok)), srv
}

// TestClient_BearerToken: токен из источника попадает в заголовок Authorization,
// пустой токен заголовка не создаёт.
func TestClient_BearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}

	client, _ := newTestClient(t, handler, "tok-abc")
	require.NoError(t, client.Get(context.Background(), "/profile", nil, nil))
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)

	client, _ = newTestClient(t, handler, "")
	require.NoError(t, client.Get(context.Background(), "/plans", nil, nil))
	assert.Empty(t, gotAuth)
}

// TestClient_GetDecodes: успешный ответ декодируется в out, query уходит в URL.
func TestClient_GetDecodes(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a@b.c", r.URL.Query().Get("email"))
		w.Write([]byte(`{"message":"ok"}`))
	}
	client, _ := newTestClient(t, handler, "")

	var out struct {
		Message string `json:"message"`
	}
	err := client.Get(context.Background(), "/stats", url.Values{"email": {"a@b.c"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Message)
}

// TestClient_ErrorDetail проверяет нормализацию тела ошибки бэкенда.
func TestClient_ErrorDetail(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "string detail",
			status:  http.StatusBadRequest,
			body:    `{"detail":"Email already registered"}`,
			wantMsg: "Email already registered",
		},
		{
			name:    "field errors joined",
			status:  http.StatusUnprocessableEntity,
			body:    `{"detail":[{"msg":"field email is not valid"},{"msg":"field password is too short"}]}`,
			wantMsg: "field email is not valid, field password is too short",
		},
		{
			name:    "unparsable body falls back to status text",
			status:  http.StatusInternalServerError,
			body:    "boom",
			wantMsg: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "")

			err := client.Get(context.Background(), "/x", nil, nil)
			require.Error(t, err)
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

// TestClient_UnauthorizedHandler: обработчик 401 вызывается ровно один раз
// на каждый отклонённый ответ и не вызывается для других статусов.
func TestClient_UnauthorizedHandler(t *testing.T) {
	status := http.StatusUnauthorized
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{"detail":"Not authenticated"}`))
	}, "stale")

	calls := 0
	client.SetUnauthorizedHandler(func() { calls++ })

	err := client.Get(context.Background(), "/history", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, calls)

	// Второй отклонённый ответ — второй вызов, не больше.
	_ = client.Get(context.Background(), "/history", nil, nil)
	assert.Equal(t, 2, calls)

	status = http.StatusBadRequest
	err = client.Get(context.Background(), "/history", nil, nil)
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, 2, calls)
}

// TestClient_PostMultipart: файл и обычные поля доходят до сервера.
func TestClient_PostMultipart(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "a@b.c", r.FormValue("email"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "car.jpg", header.Filename)
		assert.Equal(t, "imagebytes", string(content))

		w.Write([]byte(`{"detected":"car"}`))
	}
	client, _ := newTestClient(t, handler, "tok")

	var out struct {
		Detected string `json:"detected"`
	}
	err := client.PostMultipart(context.Background(), "/analyze", "file", "car.jpg",
		strings.NewReader("imagebytes"), map[string]string{"email": "a@b.c"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "car", out.Detected)
}
