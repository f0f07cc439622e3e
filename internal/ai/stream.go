package ai

// Event-stream lines are cut on raw bytes before any decoding, so a
// multi-byte rune that straddles two network reads is always decoded whole.

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

var (
	dataPrefix   = []byte("data:")
	doneSentinel = []byte("[DONE]")
)

// frameReader yields the payloads of "data:" lines from an event stream.
// Blank lines, comments and any other line shapes are skipped.
type frameReader struct {
	r *bufio.Reader
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the trimmed payload of the next data frame. It returns
// io.EOF once the body is exhausted. A final line without a trailing
// newline is still returned as a frame.
func (f *frameReader) Next() ([]byte, error) {
	for {
		line, err := f.r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if payload, ok := framePayload(line); ok {
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func framePayload(line []byte) ([]byte, bool) {
	line = bytes.TrimRight(line, "\r\n")
	if len(bytes.TrimSpace(line)) == 0 || !bytes.HasPrefix(line, dataPrefix) {
		return nil, false
	}
	return bytes.TrimSpace(line[len(dataPrefix):]), true
}

func isDone(payload []byte) bool {
	return bytes.Equal(payload, doneSentinel)
}
