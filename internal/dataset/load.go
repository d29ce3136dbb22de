package dataset

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

// Parse decodes CSV rows with the dataset's column headers. Extra columns
// are ignored.
func Parse(r io.Reader) ([]types.GradeRow, error) {
	var rows []types.GradeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse dataset csv: %w", err)
	}
	return rows, nil
}

// Load fetches and parses the whole table from src. Any failure is a
// *LoadError.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	body, err := src.Open(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	defer body.Close()

	rows, err := Parse(body)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}

	return New(rows), nil
}
