package pkg

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	ErrAttachmentType     = errors.New("attachment must be a PDF or Word document")
	ErrAttachmentTooLarge = errors.New("attachment exceeds the maximum allowed size")
)

type UploadPolicy struct {
	AllowedTypes []string
	MaxSize      int64
	Dir          string
}

// Validate checks the declared MIME type first, then the size. Both checks run
// before anything is written anywhere.
func (p UploadPolicy) Validate(fh *multipart.FileHeader) error {
	contentType := fh.Header.Get("Content-Type")
	allowed := false
	for _, t := range p.AllowedTypes {
		if contentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrAttachmentType
	}
	if fh.Size > p.MaxSize {
		return ErrAttachmentTooLarge
	}
	return nil
}

// Save stores a validated upload under the policy directory and returns the
// relative path recorded on the entity.
func (p UploadPolicy) Save(c *gin.Context, fh *multipart.FileHeader, subdir string) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
	dst := filepath.Join(p.Dir, subdir, name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return dst, nil
}
