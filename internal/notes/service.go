package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const serviceName = "lecture-notes"

type Options struct {
	// MaxSize is the upload ceiling in bytes. Zero means DefaultMaxSize.
	MaxSize int64
	// StageTimeout bounds each upstream call. Zero means no bound.
	StageTimeout time.Duration
}

// Service runs the upload -> transcript -> notes pipeline.
type Service struct {
	stt      Transcriber
	gen      NoteGenerator
	notifier Notifier
	log      *logger.ZapLogger
	maxSize  int64
	timeout  time.Duration
}

func NewService(
	stt Transcriber,
	gen NoteGenerator,
	notifier Notifier,
	log *logger.ZapLogger,
	opts Options,
) *Service {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	return &Service{
		stt:      stt,
		gen:      gen,
		notifier: notifier,
		log:      log,
		maxSize:  opts.MaxSize,
		timeout:  opts.StageTimeout,
	}
}

func (s *Service) MaxSize() int64 { return s.maxSize }

// Validate checks presence, type and size in that order.
func (s *Service) Validate(m *Media) error {
	if m == nil {
		return ErrMissingInput
	}
	if !IsAllowedType(m.ContentType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, m.ContentType)
	}
	if m.Size > s.maxSize {
		return fmt.Errorf("%w: %s exceeds %s",
			ErrTooLarge, humanize.IBytes(uint64(m.Size)), humanize.IBytes(uint64(s.maxSize)))
	}
	return nil
}

// Convert validates the upload, transcribes it and turns the transcript
// into markdown notes. Either both stages succeed or nothing is returned.
func (s *Service) Convert(ctx context.Context, m *Media) (Result, error) {
	if err := s.Validate(m); err != nil {
		return Result{}, err
	}

	jobID := uuid.NewString()
	start := time.Now()
	s.info(fmt.Sprintf("[notes] job=%s start file=%q type=%s size=%s",
		jobID, m.Filename, m.ContentType, humanize.IBytes(uint64(m.Size))))

	transcript, err := s.transcribe(ctx, *m)
	if err != nil {
		return Result{}, s.fail(ctx, jobID, StageTranscription, err)
	}
	s.info(fmt.Sprintf("[notes] job=%s transcription done chars=%d", jobID, len(transcript)))

	markdown, err := s.generate(ctx, transcript)
	if err != nil {
		return Result{}, s.fail(ctx, jobID, StageNotes, err)
	}

	s.info(fmt.Sprintf("[notes] job=%s done in %.1fs", jobID, time.Since(start).Seconds()))

	return Result{
		Transcript: string(transcript),
		Markdown:   markdown,
	}, nil
}

func (s *Service) transcribe(ctx context.Context, m Media) (Transcript, error) {
	ctx, cancel := s.stageContext(ctx)
	defer cancel()

	t, err := s.stt.Transcribe(ctx, m)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(t)) == "" {
		return "", errors.New("empty transcript")
	}
	return t, nil
}

func (s *Service) generate(ctx context.Context, t Transcript) (string, error) {
	ctx, cancel := s.stageContext(ctx)
	defer cancel()

	md, err := s.gen.GenerateNotes(ctx, t)
	if err != nil {
		return "", err
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return "", errors.New("empty notes")
	}
	return md, nil
}

func (s *Service) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

func (s *Service) fail(ctx context.Context, jobID string, stage Stage, err error) error {
	uerr := &UpstreamError{Stage: stage, Err: err}

	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("[notes] job=%s %s failed", jobID, stage),
		Service: serviceName,
		Error:   err,
	})

	if s.notifier != nil {
		if nerr := s.notifier.Notify(ctx, uerr, "job "+jobID); nerr != nil {
			s.log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "[notes] failure alert not delivered",
				Service: serviceName,
				Error:   nerr,
			})
		}
	}

	return uerr
}

func (s *Service) info(msg string) {
	s.log.Log(logger.LogEntry{Level: "info", Message: msg, Service: serviceName})
}
