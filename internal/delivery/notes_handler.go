package delivery

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/lecture_notes/internal/notes"
	"github.com/Vovarama1992/lecture_notes/internal/ports"
	"github.com/dustin/go-humanize"
)

const (
	uploadField      = "file"
	downloadFilename = "lecture-notes.md"
)

type processResponse struct {
	Success    bool   `json:"success"`
	Transcript string `json:"transcript"`
	Markdown   string `json:"markdown"`
}

type NotesHandler struct {
	notesService ports.NotesService
	log          *logger.ZapLogger
}

func NewNotesHandler(notesService ports.NotesService, log *logger.ZapLogger) *NotesHandler {
	return &NotesHandler{
		notesService: notesService,
		log:          log,
	}
}

// Process handles POST /api/process: one multipart "file" in, transcript
// and markdown notes out.
func (h *NotesHandler) Process(w http.ResponseWriter, r *http.Request) {
	h.log.Log(logger.LogEntry{Level: "info", Message: "received POST /api/process", Service: "lecture-notes"})

	media, err := h.readUpload(r)
	if err != nil {
		h.writeConvertError(w, err)
		return
	}

	res, err := h.notesService.Convert(r.Context(), media)
	if err != nil {
		h.writeConvertError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, processResponse{
		Success:    true,
		Transcript: res.Transcript,
		Markdown:   res.Markdown,
	})
}

// readUpload streams the multipart body and keeps the file part in memory,
// reading at most MaxSize+1 bytes of it. Other fields are drained and never
// count against the size limit. A nil media means no file was sent.
func (h *NotesHandler) readUpload(r *http.Request) (*notes.Media, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, nil
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart: %w", err)
		}
		if part.FormName() != uploadField {
			_, err := io.Copy(io.Discard, part)
			part.Close()
			if err != nil {
				return nil, fmt.Errorf("skip field %q: %w", part.FormName(), err)
			}
			continue
		}
		defer part.Close()

		media := &notes.Media{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
		}
		// the type is checked first, no need to buffer a rejected body
		if !notes.IsAllowedType(media.ContentType) {
			return media, nil
		}

		limit := h.notesService.MaxSize()
		var buf bytes.Buffer
		n, err := io.Copy(&buf, io.LimitReader(part, limit+1))
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}

		media.Size = n
		if n > limit {
			// only the size matters from here on
			buf.Reset()
		}
		media.Data = bytes.NewReader(buf.Bytes())
		return media, nil
	}
}

func (h *NotesHandler) writeConvertError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notes.ErrMissingInput):
		h.writeError(w, http.StatusBadRequest, "No file uploaded.")
	case errors.Is(err, notes.ErrUnsupportedType):
		h.writeError(w, http.StatusBadRequest, "Unsupported file type. Please upload an MP3, WAV, MP4, or M4A file.")
	case errors.Is(err, notes.ErrTooLarge):
		h.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("File size exceeds %s limit.", humanize.IBytes(uint64(h.notesService.MaxSize()))))
	default:
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to process upload", Service: "lecture-notes", Error: err})
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Failed to process the file",
			Error:   err.Error(),
		})
	}
}

// Download handles GET /api/download?content=... and echoes the text back
// as a markdown attachment.
func (h *NotesHandler) Download(w http.ResponseWriter, r *http.Request) {
	content := r.URL.Query().Get("content")
	if content == "" {
		h.writeError(w, http.StatusBadRequest, "No content provided")
		return
	}

	w.Header().Set("Content-Type", "text/markdown")
	w.Header().Set("Content-Disposition", "attachment; filename="+downloadFilename)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, content)
}
