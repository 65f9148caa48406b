package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// JSONHandler implements the IOHandler interface for JSON-Lines communication.
//
// Each input line is either a tool-call object ({"step_id": "..."}), a JSON
// string, or plain text. Each answer is one JSON object per line.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: enc,
	}
}

// Input reads the next non-blank line and extracts the query from it.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := h.Reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text != "" {
			return decodeQuery(text), nil
		}
		if err != nil {
			return "", err
		}
	}
}

func decodeQuery(text string) string {
	var call map[string]any
	if err := json.Unmarshal([]byte(text), &call); err == nil {
		if v, ok := call[domain.ToolArgStepID].(string); ok {
			return v
		}
		return ""
	}

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val
	}

	// Fallback: plain text
	return text
}

// Output emits the answer as a single JSON line.
func (h *JSONHandler) Output(_ context.Context, answer Answer) error {
	return h.Encoder.Encode(answer)
}

// SystemOutput emits {"system": msg}.
func (h *JSONHandler) SystemOutput(_ context.Context, msg string) error {
	return h.Encoder.Encode(map[string]string{"system": msg})
}
