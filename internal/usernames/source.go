// internal/usernames/source.go
// Package usernames loads username lists into tokenized batches for
// inspecting how the chat name generator's training data tokenizes.
package usernames

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultFileName is the username list read when no path is given
const DefaultFileName = "usernames.txt"

// Record is one username
type Record struct {
	Name string `json:"name" yaml:"name"`
}

// Source yields one Record per line of its input. It is forward-only:
// once exhausted it keeps reporting no more records.
type Source struct {
	r      *bufio.Reader
	closer io.Closer
	done   bool
	err    error
	line   int
}

// NewSource reads records from r
func NewSource(r io.Reader) *Source {
	s := &Source{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Open opens a username file
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open usernames: %w", err)
	}
	return NewSource(f), nil
}

// Next returns the next record. ok is false at end of input or on error;
// check Err to tell them apart. The trailing newline is stripped; a blank
// line yields a record with an empty name.
func (s *Source) Next() (rec Record, ok bool) {
	if s.done {
		return Record{}, false
	}

	line, err := s.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.fail(fmt.Errorf("failed to read line %d: %w", s.line+1, err))
		return Record{}, false
	}
	if line == "" {
		s.fail(nil)
		return Record{}, false
	}

	s.line++
	return Record{Name: strings.TrimSuffix(line, "\n")}, true
}

// Err returns the first read error, if any
func (s *Source) Err() error {
	return s.err
}

// Close releases the underlying file
func (s *Source) Close() error {
	s.done = true
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}

func (s *Source) fail(err error) {
	s.done = true
	s.err = err
	if s.closer != nil {
		s.closer.Close()
		s.closer = nil
	}
}
