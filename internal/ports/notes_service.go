package ports

import (
	"context"

	"github.com/Vovarama1992/lecture_notes/internal/notes"
)

type NotesService interface {
	Convert(ctx context.Context, m *notes.Media) (notes.Result, error)
	// MaxSize is the upload ceiling in bytes.
	MaxSize() int64
}
