package model

import (
	"context"
	"io"
)

// Storage is the file-storage collaborator: store, read and delete
// objects by name. Attachment bodies live here, never in the graph.
type Storage interface {
	Upload(ctx context.Context, name string, reader io.Reader) error
	Download(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}
