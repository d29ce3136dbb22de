// Package mirror copies the public grade dataset into Cloud Storage so the
// API can load it from the project bucket instead of the upstream host.
package mirror

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
)

// Uploader stores a file at a bucket path.
type Uploader interface {
	UploadFile(ctx context.Context, path string, data []byte) error
}

// Result describes a finished mirror run.
type Result struct {
	Source string
	Path   string
	Bytes  int
	Rows   int
}

// Mirror fetches the dataset from src and uploads it under folder.
type Mirror struct {
	src      dataset.Source
	uploader Uploader
	folder   string
}

func New(src dataset.Source, uploader Uploader, folder string) *Mirror {
	return &Mirror{
		src:      src,
		uploader: uploader,
		folder:   strings.Trim(folder, "/"),
	}
}

// Run downloads the CSV, checks that it parses as grade rows, and uploads
// it as <folder>/<fileName>. Nothing is uploaded when the download does not
// parse or holds no rows.
func (m *Mirror) Run(ctx context.Context, fileName string) (*Result, error) {
	if fileName == "" || strings.ContainsAny(fileName, "/\\") {
		return nil, fmt.Errorf("invalid file name %q", fileName)
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		return nil, fmt.Errorf("file name %q must end in .csv", fileName)
	}

	body, err := m.src.Open(ctx)
	if err != nil {
		return nil, &dataset.LoadError{Source: m.src.String(), Err: err}
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &dataset.LoadError{Source: m.src.String(), Err: fmt.Errorf("failed to read dataset: %w", err)}
	}

	rows, err := dataset.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &dataset.LoadError{Source: m.src.String(), Err: err}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset from %s has no rows", m.src)
	}

	cloudPath := fileName
	if m.folder != "" {
		cloudPath = path.Join(m.folder, fileName)
	}

	if err := m.uploader.UploadFile(ctx, cloudPath, data); err != nil {
		return nil, fmt.Errorf("failed to upload dataset to cloud storage: %w", err)
	}

	log.Printf("Successfully mirrored %d rows (%d bytes) from %s to %s", len(rows), len(data), m.src, cloudPath)
	return &Result{
		Source: m.src.String(),
		Path:   cloudPath,
		Bytes:  len(data),
		Rows:   len(rows),
	}, nil
}
