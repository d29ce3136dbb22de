package firebase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"

	goStorage "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/storage"
	"github.com/google/uuid"
)

// DatasetFolder is where mirrored grade CSVs live in the bucket.
const DatasetFolder = "grades"

type CloudStorage struct {
	*storage.Client
	bucketName string
}

// BucketForEnvironment picks the bucket from SAVE_ENVIRONMENT.
func BucketForEnvironment(saveEnvironment string) string {
	if saveEnvironment == "local" || saveEnvironment == "dev" {
		return "uiuc-grade-stats-dev.firebasestorage.app"
	} else if saveEnvironment == "prod" {
		return "uiuc-grade-stats.firebasestorage.app"
	}
	return ""
}

func NewCloudStorage(ctx context.Context, app *firebase.App, bucketName string) (*CloudStorage, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}

	return &CloudStorage{
		Client:     client,
		bucketName: bucketName,
	}, nil
}

func (s *CloudStorage) bucket() (*goStorage.BucketHandle, error) {
	if s.bucketName == "" {
		return s.DefaultBucket()
	}
	return s.Bucket(s.bucketName)
}

func (s *CloudStorage) UploadFile(ctx context.Context, path string, data []byte) error {
	if err := s.validateUpload(path, data); err != nil {
		return fmt.Errorf("upload validation failed: %w", err)
	}

	bucket, err := s.bucket()
	if err != nil {
		return fmt.Errorf("failed to get storage bucket '%s': %w", s.bucketName, err)
	}

	object := bucket.Object(path)
	writer := object.NewWriter(ctx)

	writer.ObjectAttrs.ContentType = s.detectContentType(path)
	writer.ObjectAttrs.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": uuid.New().String(),
	}

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		writer.Close()
		return fmt.Errorf("failed to upload file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload: %w", err)
	}

	return nil
}

// OpenObject streams an object from the bucket.
func (s *CloudStorage) OpenObject(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, err := s.bucket()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage bucket '%s': %w", s.bucketName, err)
	}

	reader, err := bucket.Object(path).NewReader(ctx)
	if err != nil {
		if errors.Is(err, goStorage.ErrObjectNotExist) {
			return nil, fmt.Errorf("object %s does not exist in bucket '%s'", path, s.bucketName)
		}
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	return reader, nil
}

// ObjectSource reads the dataset CSV from Cloud Storage.
type ObjectSource struct {
	storage *CloudStorage
	path    string
}

func (s *CloudStorage) DatasetSource(path string) *ObjectSource {
	return &ObjectSource{storage: s, path: path}
}

func (o *ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return o.storage.OpenObject(ctx, o.path)
}

func (o *ObjectSource) String() string {
	return fmt.Sprintf("gs://%s/%s", o.storage.bucketName, o.path)
}

// validateUpload performs input validation for file uploads
func (s *CloudStorage) validateUpload(path string, data []byte) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	if len(data) == 0 {
		return fmt.Errorf("file data cannot be empty")
	}

	if strings.Contains(path, "..") || strings.Contains(path, "//") {
		return fmt.Errorf("invalid file path: contains unsafe characters")
	}

	return nil
}

func (s *CloudStorage) detectContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	}

	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		log.Printf("detected MIME type: %s for file: %s", mimeType, path)
		return mimeType
	}
	return "application/octet-stream"
}
