// Package upload implements the unsigned image-upload collaborator used
// to resolve avatar and cover images to URLs before registration or book
// creation.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// UploadError reports a failed asset transfer.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "image upload failed"
}

// Uploader posts files to an unsigned upload endpoint and returns the
// hosted URL.
type Uploader struct {
	url    string
	preset string
	http   *http.Client
}

// New constructs an Uploader for the given endpoint and unsigned preset.
func New(url, preset string) *Uploader {
	return &Uploader{
		url:    url,
		preset: preset,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends one file and returns its hosted URL. Any transport or
// remote failure surfaces as *UploadError.
func (u *Uploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", &UploadError{Message: err.Error()}
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", &UploadError{Message: err.Error()}
	}
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return "", &UploadError{Message: err.Error()}
	}
	if err := mw.Close(); err != nil {
		return "", &UploadError{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, &body)
	if err != nil {
		return "", &UploadError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", &UploadError{Message: fmt.Sprintf("upload request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UploadError{Message: fmt.Sprintf("upload rejected: %s", resp.Status)}
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &UploadError{Message: "malformed upload response"}
	}
	if result.SecureURL == "" {
		return "", &UploadError{Message: "upload response missing url"}
	}
	return result.SecureURL, nil
}
