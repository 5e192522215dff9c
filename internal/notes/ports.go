package notes

import "context"

// Transcriber is the speech-to-text stage.
type Transcriber interface {
	Transcribe(ctx context.Context, m Media) (Transcript, error)
}

// NoteGenerator turns a transcript into markdown notes.
type NoteGenerator interface {
	GenerateNotes(ctx context.Context, t Transcript) (string, error)
}

// Notifier reports upstream failures to operators.
type Notifier interface {
	Notify(ctx context.Context, err error, details string) error
}
