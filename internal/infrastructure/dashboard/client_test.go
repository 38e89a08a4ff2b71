package dashboard_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kurochkinivan/dashboard_client/internal/config"
	"github.com/kurochkinivan/dashboard_client/internal/dashboardtest"
	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/dashboard"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, srv *dashboardtest.Server) *dashboard.Client {
	t.Helper()

	c, err := dashboard.New(slog.New(slog.DiscardHandler), config.Dashboard{
		URL:      srv.URL,
		Timeout:  5 * time.Second,
		CacheTTL: time.Minute,
	})
	require.NoError(t, err)

	return c
}

func zipBytes(n int) []byte {
	data := make([]byte, n)
	copy(data, "PK\x03\x04")
	return data
}

func TestNew_RejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := dashboard.New(slog.New(slog.DiscardHandler), config.Dashboard{URL: "ftp://dashboard"})
	require.Error(t, err)
}

func TestClient_Upload(t *testing.T) {
	t.Parallel()

	srv := dashboardtest.New(t)
	c := newClient(t, srv)

	files := []*domain.FileHandle{
		domain.FileHandleFromBytes("calls_20240101.zip", zipBytes(2048)),
		domain.FileHandleFromBytes("broken.zip", []byte("not a zip")),
		domain.FileHandleFromBytes("calls_20240101.zip", zipBytes(10)),
	}

	var percents []int
	var lastSent, lastTotal int64
	resp, err := c.Upload(t.Context(), files, func(sent, total int64) {
		percents = append(percents, uploader.Percent(sent, total))
		lastSent, lastTotal = sent, total
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 3)
	assert.Equal(t, 2, resp.Succeeded())
	assert.Equal(t, "2024-01-01", resp.Results[0].Data.Date)
	assert.Equal(t, 2048, resp.Results[0].Data.TotalOperations)
	assert.False(t, resp.Results[1].Success)
	assert.Contains(t, resp.Results[1].Message, "not a zip archive")

	uploads := srv.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, []string{"calls_20240101.zip", "broken.zip", "calls_20240101.zip"}, uploads[0].Filenames)
	assert.Equal(t, []int64{2048, 9, 10}, uploads[0].Sizes)

	// заявленная длина тела совпадает с отправленной
	assert.Equal(t, uploads[0].ContentLength, lastTotal)
	assert.Equal(t, lastTotal, lastSent)

	require.NotEmpty(t, percents)
	assert.True(t, slicesNonDecreasing(percents))
	assert.Equal(t, 100, percents[len(percents)-1])
}

func TestClient_Upload_WebhookURL(t *testing.T) {
	t.Parallel()

	srv := dashboardtest.New(t)
	c, err := dashboard.New(slog.New(slog.DiscardHandler), config.Dashboard{URL: srv.URL},
		dashboard.WithWebhookURL("https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=abc"))
	require.NoError(t, err)

	var lastSent, lastTotal int64
	resp, err := c.Upload(t.Context(), []*domain.FileHandle{
		domain.FileHandleFromBytes("calls_20240101.zip", zipBytes(512)),
	}, func(sent, total int64) {
		lastSent, lastTotal = sent, total
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded())

	uploads := srv.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=abc", uploads[0].WebhookURL)
	assert.Equal(t, []string{"calls_20240101.zip"}, uploads[0].Filenames)

	// поле webhook_url входит в заявленную длину тела
	assert.Equal(t, uploads[0].ContentLength, lastTotal)
	assert.Equal(t, lastTotal, lastSent)
}

func TestNew_RejectsBadWebhookURL(t *testing.T) {
	t.Parallel()

	_, err := dashboard.New(slog.New(slog.DiscardHandler), config.Dashboard{URL: "http://dashboard"},
		dashboard.WithWebhookURL("not a url"))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func slicesNonDecreasing(s []int) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

func TestClient_Upload_OpenFailure(t *testing.T) {
	t.Parallel()

	srv := dashboardtest.New(t)
	c := newClient(t, srv)

	broken := domain.NewFileHandle("gone.zip", 4, func() (io.ReadCloser, error) {
		return nil, errors.New("permission denied")
	})

	_, err := c.Upload(t.Context(), []*domain.FileHandle{broken}, nil)
	require.Error(t, err)

	var transportErr *domain.TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Empty(t, srv.Uploads())
}

func TestClient_Upload_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "status with server message",
			status:     http.StatusRequestEntityTooLarge,
			body:       map[string]any{"success": false, "error": "file too large"},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantMsg:    "file too large",
		},
		{
			name:       "status without body falls back to status text",
			status:     http.StatusBadGateway,
			body:       nil,
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Bad Gateway",
		},
		{
			name:       "success flag false on 200",
			status:     http.StatusOK,
			body:       map[string]any{"success": false, "error": "processing disabled"},
			wantStatus: http.StatusOK,
			wantMsg:    "processing disabled",
		},
		{
			name:       "malformed json on 200",
			status:     http.StatusOK,
			body:       "<html>oops</html>",
			wantStatus: http.StatusOK,
			wantMsg:    "malformed response",
		},
		{
			name:       "empty body on 200",
			status:     http.StatusOK,
			body:       nil,
			wantStatus: http.StatusOK,
			wantMsg:    "malformed response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := dashboardtest.New(t)
			srv.Respond(http.MethodPost, "/api/upload", tt.status, tt.body)
			c := newClient(t, srv)

			files := []*domain.FileHandle{domain.FileHandleFromBytes("a.zip", zipBytes(16))}
			_, err := c.Upload(t.Context(), files, nil)

			var rejection *domain.ServerRejection
			require.ErrorAs(t, err, &rejection)
			assert.Equal(t, tt.wantStatus, rejection.StatusCode)
			assert.Contains(t, rejection.Error(), tt.wantMsg)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := dashboardtest.New(t)
	c := newClient(t, srv)
	srv.Close()

	_, err := c.Files(t.Context())

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	srv := dashboardtest.New(t, dashboardtest.WithCredentials("admin", "secret"))
	c := newClient(t, srv)

	// без сессии сервер перенаправляет на страницу входа
	_, err := c.Files(t.Context())
	var rejection *domain.ServerRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusFound, rejection.StatusCode)
	assert.Contains(t, rejection.Error(), "authentication required")

	err = c.Login(t.Context(), "admin", "wrong")
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusUnauthorized, rejection.StatusCode)
	assert.Contains(t, rejection.Error(), "invalid username or password")

	require.NoError(t, c.Login(t.Context(), "admin", "secret"))

	files, err := c.Files(t.Context())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestClient_RequestIDs(t *testing.T) {
	t.Parallel()

	srv := dashboardtest.New(t)
	c := newClient(t, srv)

	_, err := c.Files(t.Context())
	require.NoError(t, err)
	_, err = c.ScheduleStatus(t.Context())
	require.NoError(t, err)

	ids := srv.RequestIDs()
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	for _, id := range ids {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}
}

func TestClient_FilesAndDelete(t *testing.T) {
	t.Parallel()

	srv := dashboardtest.New(t, dashboardtest.WithFiles(
		&domain.RemoteFile{Filename: "old.zip", Size: 10, Modified: "2024-01-01 10:00:00"},
		&domain.RemoteFile{Filename: "new file.zip", Size: 20, Modified: "2024-01-02 10:00:00"},
	))
	c := newClient(t, srv)

	files, err := c.Files(t.Context())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "new file.zip", files[0].Filename)
	assert.Equal(t, int64(20), files[0].Size)

	msg, err := c.DeleteFile(t.Context(), "new file.zip")
	require.NoError(t, err)
	assert.Contains(t, msg, "new file.zip")
	assert.False(t, srv.HasFile("new file.zip"))

	_, err = c.DeleteFile(t.Context(), "missing.zip")
	var rejection *domain.ServerRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusNotFound, rejection.StatusCode)

	_, err = c.DeleteFile(t.Context(), "report.pdf")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, srv.Requests(http.MethodDelete, "/api/files/report.pdf"))
}
