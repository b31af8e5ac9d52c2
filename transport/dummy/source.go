package dummy

import (
	"io"
)

// Source is a scripted byte source. Every read returns at most one chunk, splitting it
// further if the chunk doesn't fit into the buffer. An empty chunk results in a read of
// zero bytes without an error. After the last chunk, io.EOF is returned unless another
// error was set via WithError.
type Source struct {
	chunks [][]byte
	err    error
}

func NewSource(chunks ...[]byte) *Source {
	return &Source{
		chunks: chunks,
	}
}

// NewStringSource is a shorthand for NewSource with string chunks.
func NewStringSource(chunks ...string) *Source {
	bytesChunks := make([][]byte, len(chunks))
	for i, chunk := range chunks {
		bytesChunks[i] = []byte(chunk)
	}

	return NewSource(bytesChunks...)
}

// WithError sets the error returned after the chunks are exhausted.
func (s *Source) WithError(err error) *Source {
	s.err = err
	return s
}

func (s *Source) Read(b []byte) (n int, err error) {
	if len(s.chunks) == 0 {
		if s.err != nil {
			return 0, s.err
		}

		return 0, io.EOF
	}

	n = copy(b, s.chunks[0])
	if s.chunks[0] = s.chunks[0][n:]; len(s.chunks[0]) == 0 {
		s.chunks = s.chunks[1:]
	}

	return n, nil
}

// Pending returns the number of chunks not fully read yet.
func (s *Source) Pending() int {
	return len(s.chunks)
}
