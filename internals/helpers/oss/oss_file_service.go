// file: internals/helpers/oss/oss_file_service.go
package oss

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/gofiber/fiber/v2"
)

// BlobService adalah kontrak penyimpanan file untuk layer controller,
// supaya handler & test tidak pernah menyentuh bucket asli.
type BlobService interface {
	// UploadAny mengunggah file multipart ke direktori logis tertentu dan
	// mengembalikan public URL yang durable.
	UploadAny(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error)
}

/* =========================
   Implementasi OSS asli
========================= */

type OSSBlobService struct {
	svc *OSSService
}

func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	svc, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: svc}, nil
}

func (b *OSSBlobService) UploadAny(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	url, _, err := b.svc.UploadFromFormFile(ctx, dir, fh)
	return url, err
}

/* =========================
   Helpers untuk controller
========================= */

func IsMultipart(c *fiber.Ctx) bool {
	ct := c.Get(fiber.HeaderContentType)
	return len(ct) >= 19 && ct[:19] == "multipart/form-data"
}

// TryGetFormFile mengambil file dari field tertentu; (nil, nil) jika tidak ada.
func TryGetFormFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return fh, nil
}

/* =========================
   Mock untuk test
========================= */

type MockBlobService struct {
	mu       sync.Mutex
	Uploads  []string
	FailWith error
}

func (m *MockBlobService) UploadAny(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return "", m.FailWith
	}
	url := fmt.Sprintf("https://blob.test/%s/%s", dir, fh.Filename)
	m.Uploads = append(m.Uploads, url)
	return url, nil
}
