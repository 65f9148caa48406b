package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// TextHandler implements the prompt-based interface for terminals and pipes.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	// Prompt is written before every read. Empty disables it.
	Prompt string

	lines chan inputResult
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithPrompt overrides the input prompt.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Prompt: "> ",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Input prints the prompt and reads one line. It returns early with the
// context error if ctx is cancelled while the read is blocked; the pending
// line is kept for the next call.
func (h *TextHandler) Input(ctx context.Context) (string, error) {
	if h.Prompt != "" {
		fmt.Fprint(h.Writer, h.Prompt)
	}

	if h.lines == nil {
		h.lines = make(chan inputResult, 1)
		go h.read()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-h.lines:
		if res.err != nil {
			return "", res.err
		}
		go h.read()
		return strings.TrimSpace(res.text), nil
	}
}

func (h *TextHandler) read() {
	text, err := h.Reader.ReadString('\n')
	if err == io.EOF && text != "" {
		// Serve the last unterminated line; the next read reports EOF.
		err = nil
	}
	h.lines <- inputResult{text: text, err: err}
}

// Output writes the answer, rendered when a renderer is configured.
func (h *TextHandler) Output(_ context.Context, answer Answer) error {
	if answer.Error != "" {
		_, err := fmt.Fprintf(h.Writer, "error: %s\n", answer.Error)
		return err
	}

	out := answer.Result
	if h.Renderer != nil {
		rendered, err := h.Renderer(out)
		if err == nil {
			out = rendered
		}
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(h.Writer, out)
	return err
}

// SystemOutput writes a meta-message prefixed with "# ".
func (h *TextHandler) SystemOutput(_ context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "# %s\n", msg)
	return err
}
