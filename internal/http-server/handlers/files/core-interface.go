package files

import (
	"DentEase/entity"
	"context"
	"io"
)

type Core interface {
	OpenFile(ctx context.Context, fileID, expires, sig string) (string, entity.FileMetadata, io.ReadCloser, error)
}
