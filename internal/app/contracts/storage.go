package contracts

import (
	"context"
	"io"
	"time"
)

type AttachmentStorage interface {
	Store(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
