package core

import (
	"DentEase/entity"
	"DentEase/internal/lib/api/cont"
	"DentEase/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

func (c *Core) withImageURL(svc *entity.Service) {
	svc.ImageURL = ""
	if c.signer != nil && svc.ImageID != "" {
		svc.ImageURL = c.signer.URL(svc.ImageID)
	}
}

func (c *Core) ListServices(ctx context.Context) ([]entity.Service, error) {
	services, err := c.repo.AllServices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		c.withImageURL(&services[i])
	}
	return services, nil
}

func (c *Core) CreateService(ctx context.Context, in entity.ServiceInput) (*entity.Service, error) {
	svc := &entity.Service{
		ID:       uuid.NewString(),
		IsActive: true,
	}
	in.Apply(svc)
	svc.UpdatedAt = c.now().UTC()
	if err := c.repo.UpsertService(ctx, svc); err != nil {
		return nil, err
	}
	c.log.Info("service created", slog.String("id", svc.ID), slog.String("name", svc.Name))
	c.withImageURL(svc)
	return svc, nil
}

func (c *Core) UpdateService(ctx context.Context, id string, in entity.ServiceInput) (*entity.Service, error) {
	svc, err := c.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(svc)
	svc.UpdatedAt = c.now().UTC()
	if err = c.repo.UpsertService(ctx, svc); err != nil {
		return nil, err
	}
	c.withImageURL(svc)
	return svc, nil
}

// DeleteService removes the service and its image.
func (c *Core) DeleteService(ctx context.Context, id string) error {
	svc, err := c.repo.GetService(ctx, id)
	if err != nil {
		return err
	}
	if err = c.repo.DeleteService(ctx, svc.ID); err != nil {
		return err
	}
	c.dropImage(ctx, svc.ImageID)
	c.log.Info("service deleted", slog.String("id", svc.ID))
	return nil
}

type Upload struct {
	Filename string
	MIMEType string
	Size     int64
	Reader   io.Reader
}

// SetServiceImage stores a new image for the service and removes the one it
// replaces.
func (c *Core) SetServiceImage(ctx context.Context, id string, up Upload) (*entity.Service, error) {
	if up.Size > entity.MaxImageSize {
		return nil, entity.FileTooLargeError(up.Filename, up.Size)
	}
	if !entity.IsImage(up.MIMEType) {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedImage, up.MIMEType)
	}
	svc, err := c.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	fileID, size, err := c.files.UploadFile(ctx, up.Filename, up.Reader, entity.FileMetadata{
		MIMEType:  up.MIMEType,
		ServiceID: svc.ID,
		Uploader:  cont.Username(ctx),
	})
	if err != nil {
		return nil, err
	}

	previous := svc.ImageID
	svc.ImageID = fileID
	svc.UpdatedAt = c.now().UTC()
	if err = c.repo.UpsertService(ctx, svc); err != nil {
		c.dropImage(ctx, fileID)
		return nil, err
	}
	c.dropImage(ctx, previous)

	c.log.With(
		slog.String("service", svc.ID),
		slog.String("file", fileID),
		slog.Int64("size", size),
	).Info("service image stored")
	c.withImageURL(svc)
	return svc, nil
}

func (c *Core) DeleteServiceImage(ctx context.Context, id string) (*entity.Service, error) {
	svc, err := c.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.ImageID == "" {
		return svc, nil
	}
	previous := svc.ImageID
	svc.ImageID = ""
	svc.UpdatedAt = c.now().UTC()
	if err = c.repo.UpsertService(ctx, svc); err != nil {
		return nil, err
	}
	c.dropImage(ctx, previous)
	return svc, nil
}

func (c *Core) dropImage(ctx context.Context, fileID string) {
	if fileID == "" {
		return
	}
	if err := c.files.DeleteFile(ctx, fileID); err != nil && !errors.Is(err, entity.ErrNotFound) {
		c.log.With(slog.String("file", fileID), sl.Err(err)).Error("delete image")
	}
}

// OpenFile returns a stored image for a signed URL. The caller closes the reader.
func (c *Core) OpenFile(ctx context.Context, fileID, expires, sig string) (string, entity.FileMetadata, io.ReadCloser, error) {
	if c.signer == nil || !c.signer.Verify(fileID, expires, sig) {
		return "", entity.FileMetadata{}, nil, entity.ErrInvalidSignature
	}
	return c.files.DownloadFile(ctx, fileID)
}
