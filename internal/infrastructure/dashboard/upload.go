package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
)

const (
	uploadField  = "files[]"
	webhookField = "webhook_url"
)

// Upload streams every file as one multipart request, each part under the
// shared files[] field in selection order. The body length is computed up
// front so progress is always reported against a known total.
func (c *Client) Upload(
	ctx context.Context,
	files []*domain.FileHandle,
	progress uploader.ProgressFunc,
) (*domain.UploadResponse, error) {
	boundary := multipart.NewWriter(io.Discard).Boundary()

	total, err := multipartLength(boundary, c.webhookURL, files)
	if err != nil {
		return nil, fmt.Errorf("failed to size upload body: %w", err)
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(writeMultipart(pw, boundary, c.webhookURL, files))
	}()

	body := &progressReader{r: pr, total: total, report: progress}
	defer body.Close()

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", body)
	if err != nil {
		return nil, err
	}

	req.ContentLength = total
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)

	c.log.DebugContext(ctx, "sending upload",
		slog.Int("files", len(files)),
		slog.Int64("bytes", total),
	)

	var resp domain.UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func writeMultipart(w io.Writer, boundary, webhookURL string, files []*domain.FileHandle) error {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(boundary); err != nil {
		return err
	}

	if webhookURL != "" {
		if err := mw.WriteField(webhookField, webhookURL); err != nil {
			return fmt.Errorf("failed to write webhook field: %w", err)
		}
	}

	for _, f := range files {
		part, err := mw.CreateFormFile(uploadField, f.Name)
		if err != nil {
			return fmt.Errorf("failed to create part for %q: %w", f.Name, err)
		}

		if err := copyFile(part, f); err != nil {
			return err
		}
	}

	return mw.Close()
}

func copyFile(dst io.Writer, f *domain.FileHandle) (err error) {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", f.Name, err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	n, err := io.Copy(dst, io.LimitReader(rc, f.Size))
	if err != nil {
		return fmt.Errorf("failed to copy %q: %w", f.Name, err)
	}

	if n != f.Size {
		return fmt.Errorf("file %q changed size: expected %d bytes, read %d", f.Name, f.Size, n)
	}

	return nil
}

// multipartLength writes the multipart envelope and form fields without file
// contents; part headers do not depend on the contents, so envelope plus file
// sizes is the exact body length.
func multipartLength(boundary, webhookURL string, files []*domain.FileHandle) (int64, error) {
	var cw countingWriter

	mw := multipart.NewWriter(&cw)
	if err := mw.SetBoundary(boundary); err != nil {
		return 0, err
	}

	if webhookURL != "" {
		if err := mw.WriteField(webhookField, webhookURL); err != nil {
			return 0, err
		}
	}

	var contents int64
	for _, f := range files {
		if _, err := mw.CreateFormFile(uploadField, f.Name); err != nil {
			return 0, err
		}
		contents += f.Size
	}

	if err := mw.Close(); err != nil {
		return 0, err
	}

	return cw.n + contents, nil
}

type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

type progressReader struct {
	r      *io.PipeReader
	sent   int64
	total  int64
	report uploader.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.report != nil {
			p.report(p.sent, p.total)
		}
	}

	return n, err
}

// Close unblocks the multipart writer when the transport stops reading early.
func (p *progressReader) Close() error {
	return p.r.Close()
}
