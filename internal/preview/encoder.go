package preview

import (
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/NaiHeeeee/repkg-gui/internal/logging"
	"github.com/NaiHeeeee/repkg-gui/internal/services"
)

// State tracks whether a handle has been produced for an entry. Failed is
// terminal and distinct from Pending: a failed encode is never retried within
// a catalog generation.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Handle is the product of one encode attempt.
type Handle struct {
	State State
	URI   string
}

// mimeByExtension maps lowercase extensions to their transport MIME type.
// Unknown extensions fall back to image/jpeg, matching the tolerant behavior
// browsers extend to mislabeled images.
var mimeByExtension = map[string]string{
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"mp4":  "video/mp4",
	"webm": "video/webm",
}

const fallbackMIME = "image/jpeg"

// Encoder reads preview assets and produces data-URI handles.
type Encoder struct {
	logger *slog.Logger
}

func NewEncoder(logger *slog.Logger) *Encoder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Encoder{logger: logging.NewComponentLogger(logger, "preview")}
}

// Encode reads the asset at path and returns a ready handle carrying a
// data URI, or a failed handle when the read fails. It never returns a
// pending handle.
func (e *Encoder) Encode(path string) (Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("preview read failed", logging.String("path", path), logging.Error(err))
		return Handle{State: StateFailed}, services.Wrap(services.ErrNotFound, "preview", "encode", "read preview asset", err)
	}
	return Handle{State: StateReady, URI: DataURI(path, data)}, nil
}

// DataURI assembles a data URI for the payload, inferring the MIME type from
// the path's extension.
func DataURI(path string, payload []byte) string {
	var builder strings.Builder
	builder.WriteString("data:")
	builder.WriteString(MIMEForPath(path))
	builder.WriteString(";base64,")
	builder.WriteString(base64.StdEncoding.EncodeToString(payload))
	return builder.String()
}

// MIMEForPath infers the transport MIME type from a file path.
func MIMEForPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if mime, ok := mimeByExtension[ext]; ok {
		return mime
	}
	return fallbackMIME
}
