package firebase

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const selectionsCollection = "selections"

type selectionDoc struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// SelectionKV stores each key as a document selections/{key} whose "value"
// field holds the raw JSON.
type SelectionKV struct {
	db *Firestore
}

func NewSelectionKV(db *Firestore) *SelectionKV {
	return &SelectionKV{db: db}
}

func (s *SelectionKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	doc, err := s.db.Collection(selectionsCollection).Doc(sanitizeDocID(key)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get selection %s: %w", key, err)
	}

	var stored selectionDoc
	if err := doc.DataTo(&stored); err != nil {
		return nil, false, fmt.Errorf("failed to decode selection %s: %w", key, err)
	}
	return []byte(stored.Value), true, nil
}

func (s *SelectionKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Collection(selectionsCollection).Doc(sanitizeDocID(key)).Set(ctx, selectionDoc{
		Value:     string(value),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to store selection %s: %w", key, err)
	}
	return nil
}
