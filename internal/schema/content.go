package schema

import (
	"bytes"
	"fmt"
	"io"
)

// Content is the payload of a write operation. It is either an owned buffer
// ([Bytes], [String]) or a readable handle ([Stream]). The interface is sealed
// to these variants.
type Content interface {
	// WriteTo writes the full payload to w in a single pass.
	WriteTo(w io.Writer) (int64, error)

	isContent()
}

type bufferContent struct {
	data []byte
}

type streamContent struct {
	reader io.Reader
}

// Bytes returns a [Content] holding a byte buffer.
func Bytes(data []byte) Content {
	return &bufferContent{data: data}
}

// String returns a [Content] holding the bytes of a string.
func String(s string) Content {
	return &bufferContent{data: []byte(s)}
}

// Stream returns a [Content] reading from a handle until [io.EOF]. The handle
// is not closed.
func Stream(r io.Reader) Content {
	return &streamContent{reader: r}
}

func (c *bufferContent) WriteTo(w io.Writer) (int64, error) {
	n, err := bytes.NewReader(c.data).WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("(schema-content) %w", err)
	}
	if n != int64(len(c.data)) {
		return n, fmt.Errorf("(schema-content) %w", io.ErrShortWrite)
	}

	return n, nil
}

func (c *streamContent) WriteTo(w io.Writer) (int64, error) {
	if c.reader == nil {
		return 0, nil
	}

	n, err := io.Copy(w, c.reader)
	if err != nil {
		return n, fmt.Errorf("(schema-content) %w", err)
	}

	return n, nil
}

func (*bufferContent) isContent() {}
func (*streamContent) isContent() {}
