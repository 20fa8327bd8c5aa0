package repositories

import (
	"context"
	"io"
)

// StoredObject describes a persisted receipt file.
type StoredObject struct {
	URL       string
	SizeBytes int64
}

// ReceiptStore persists receipt attachments outside the database.
type ReceiptStore interface {
	Save(ctx context.Context, ownerID, expenseID, filename string, body io.Reader) (*StoredObject, error)
	Delete(ctx context.Context, url string) error
}
