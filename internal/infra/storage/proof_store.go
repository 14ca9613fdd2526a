package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ProofStore accepts a proof-of-payment stream plus metadata and returns
// the stored file name. The current deployment keeps bookkeeping only, so
// implementations are free to discard the bytes.
type ProofStore interface {
	Save(ctx context.Context, file io.Reader, filename, orderID, customerName string) (string, error)
}

var _ ProofStore = (*NameOnlyStore)(nil)

// NameOnlyStore generates a stored name without persisting any bytes.
type NameOnlyStore struct{}

func NewNameOnlyStore() *NameOnlyStore {
	return &NameOnlyStore{}
}

func (s *NameOnlyStore) Save(_ context.Context, _ io.Reader, filename, _, _ string) (string, error) {
	return fmt.Sprintf("uploaded_%s_%s", time.Now().Format("20060102150405"), filename), nil
}
