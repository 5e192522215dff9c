package notes

import (
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// DefaultMaxSize is the upload ceiling used when none is configured.
const DefaultMaxSize int64 = 100 << 20

var allowedTypes = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/wav":   ".wav",
	"video/mp4":   ".mp4",
	"audio/m4a":   ".m4a",
	"audio/x-m4a": ".m4a",
}

// Media is an uploaded recording. It lives only for one request.
type Media struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Transcript is the plain text produced by the transcription stage.
type Transcript string

// Result is what a successful conversion returns.
type Result struct {
	Transcript string
	Markdown   string
}

// IsAllowedType reports whether the declared content type is accepted.
// Media type parameters are ignored.
func IsAllowedType(contentType string) bool {
	_, ok := allowedTypes[baseType(contentType)]
	return ok
}

// UploadName returns a filename whose extension matches the content type,
// so that providers which sniff the extension can decode the payload.
func (m Media) UploadName() string {
	ext := allowedTypes[baseType(m.ContentType)]
	name := filepath.Base(m.Filename)
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	if filepath.Ext(name) == "" && ext != "" {
		name += ext
	}
	return name
}

func baseType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = contentType
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
