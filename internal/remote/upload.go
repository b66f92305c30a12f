package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Upload posts a single file as multipart form data under field and returns
// the stored name the backend answers with. The answer may be a bare string
// or a JSON string literal.
func (c *Client) Upload(ctx context.Context, path, field, filename string, content io.Reader) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copy %s into form: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	respBody, err := c.send(req, resourceOf(path))
	if err != nil {
		return "", err
	}
	return storedName(respBody)
}

func storedName(body []byte) (string, error) {
	raw := strings.TrimSpace(string(body))
	if strings.HasPrefix(raw, `"`) {
		var name string
		if err := json.Unmarshal([]byte(raw), &name); err != nil {
			return "", ErrMalformedResponse.WithCause(err)
		}
		raw = strings.TrimSpace(name)
	}
	if raw == "" {
		return "", ErrMalformedResponse.WithCause(fmt.Errorf("empty stored file name"))
	}
	return raw, nil
}
