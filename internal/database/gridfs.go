package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"DentEase/entity"
)

func (m *MongoDB) bucket(connection *mongo.Client) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(connection.Database(m.database), options.GridFSBucket().SetName(imagesBucket))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return bucket, nil
}

// UploadFile stores an image in GridFS and returns the generated file ID and
// size. Uploads over entity.MaxImageSize are aborted.
func (m *MongoDB) UploadFile(ctx context.Context, filename string, reader io.Reader, meta entity.FileMetadata) (string, int64, error) {
	if !entity.IsImage(meta.MIMEType) {
		return "", 0, fmt.Errorf("%w: %s", entity.ErrUnsupportedImage, meta.MIMEType)
	}
	connection, err := m.connect()
	if err != nil {
		return "", 0, err
	}
	defer m.disconnect(connection)

	bucket, err := m.bucket(connection)
	if err != nil {
		return "", 0, err
	}

	uploadOpts := options.GridFSUpload().SetMetadata(meta)
	uploadStream, err := bucket.OpenUploadStream(filename, uploadOpts)
	if err != nil {
		return "", 0, fmt.Errorf("gridfs open upload: %w", err)
	}

	size, err := io.Copy(uploadStream, io.LimitReader(reader, entity.MaxImageSize+1))
	if err != nil {
		_ = uploadStream.Abort()
		return "", 0, fmt.Errorf("gridfs copy: %w", err)
	}
	if size > entity.MaxImageSize {
		_ = uploadStream.Abort()
		return "", 0, entity.FileTooLargeError(filename, size)
	}

	if err = uploadStream.Close(); err != nil {
		return "", 0, fmt.Errorf("gridfs close upload: %w", err)
	}

	fileID := uploadStream.FileID.(primitive.ObjectID)
	return fileID.Hex(), size, nil
}

// gridfsReadCloser wraps a GridFS download stream and disconnects
// the MongoDB client when closed.
type gridfsReadCloser struct {
	stream     *gridfs.DownloadStream
	disconnect func()
}

func (r *gridfsReadCloser) Read(p []byte) (int, error) {
	return r.stream.Read(p)
}

func (r *gridfsReadCloser) Close() error {
	err := r.stream.Close()
	r.disconnect()
	return err
}

// DownloadFile retrieves a file from GridFS by its ID.
// The caller must close the returned ReadCloser to release the MongoDB connection.
func (m *MongoDB) DownloadFile(_ context.Context, fileID string) (string, entity.FileMetadata, io.ReadCloser, error) {
	oid, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return "", entity.FileMetadata{}, nil, entity.ErrNotFound
	}
	connection, err := m.connect()
	if err != nil {
		return "", entity.FileMetadata{}, nil, err
	}

	bucket, err := m.bucket(connection)
	if err != nil {
		m.disconnect(connection)
		return "", entity.FileMetadata{}, nil, err
	}

	stream, err := bucket.OpenDownloadStream(oid)
	if err != nil {
		m.disconnect(connection)
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return "", entity.FileMetadata{}, nil, entity.ErrNotFound
		}
		return "", entity.FileMetadata{}, nil, fmt.Errorf("gridfs open download: %w", err)
	}

	file := stream.GetFile()
	var meta entity.FileMetadata
	if len(file.Metadata) > 0 {
		if err := bson.Unmarshal(file.Metadata, &meta); err != nil {
			m.log.Error("failed to unmarshal gridfs metadata", "error", err.Error())
		}
	}

	reader := &gridfsReadCloser{
		stream:     stream,
		disconnect: func() { m.disconnect(connection) },
	}
	return file.Name, meta, reader, nil
}

func (m *MongoDB) DeleteFile(ctx context.Context, fileID string) error {
	oid, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return entity.ErrNotFound
	}
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	bucket, err := m.bucket(connection)
	if err != nil {
		return err
	}
	if err = bucket.DeleteContext(ctx, oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return entity.ErrNotFound
		}
		return fmt.Errorf("gridfs delete: %w", err)
	}
	return nil
}
