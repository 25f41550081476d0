// internal/cmdir/convert.go
// Package cmdir converts recorded .cmdir command logs into replayable
// .commands files.
//
// A .cmdir file is a sequence of command lines interleaved with
// end_pause(<ms>) markers holding the absolute time a pause ended. The
// .commands format has no absolute timestamps, so each marker after the
// first becomes sleep(<ms since previous marker>). The first marker has
// nothing to diff against and produces no output.
package cmdir

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const markerPrefix = "end_pause"

// Result summarizes a conversion
type Result struct {
	// Copied is the number of lines passed through unchanged
	Copied int
	// Markers is the number of end_pause lines consumed
	Markers int
	// Sleeps is the number of sleep lines emitted
	Sleeps int
}

// Converter carries the state of a single pass over one file.
// The zero value is ready to use.
type Converter struct {
	// previous is the last marker timestamp; zero means none seen yet
	previous int64
	line     int
	result   Result
}

// Convert reads a .cmdir stream from r and writes the .commands form to w
func Convert(r io.Reader, w io.Writer) (Result, error) {
	var c Converter
	if err := c.Run(r, w); err != nil {
		return c.result, err
	}
	return c.result, nil
}

// Run processes every line of r. Non-marker lines are copied byte for byte,
// including a final line without a trailing newline. Sleep lines reuse the
// line ending of the marker they replace.
func (c *Converter) Run(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if werr := c.processLine(line, bw); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read line %d: %w", c.line+1, err)
		}
	}

	return bw.Flush()
}

// Result returns the counters accumulated so far
func (c *Converter) Result() Result {
	return c.result
}

func (c *Converter) processLine(line string, w *bufio.Writer) error {
	c.line++

	if !strings.HasPrefix(line, markerPrefix) {
		c.result.Copied++
		_, err := w.WriteString(line)
		return err
	}

	timestamp, err := parseMarker(line)
	if err != nil {
		return fmt.Errorf("line %d: %w", c.line, err)
	}
	c.result.Markers++

	if c.previous != 0 {
		if _, err := fmt.Fprintf(w, "sleep(%d)%s", timestamp-c.previous, lineEnding(line)); err != nil {
			return err
		}
		c.result.Sleeps++
	}
	c.previous = timestamp

	return nil
}

// lineEnding returns the terminator a sleep line replacing line gets,
// so CRLF files stay CRLF
func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// parseMarker extracts the integer between the first '(' and the next ')'.
// A missing ')' takes the rest of the line.
func parseMarker(line string) (int64, error) {
	_, rest, found := strings.Cut(line, "(")
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrMalformedMarker, strings.TrimRight(line, "\r\n"))
	}
	value, _, _ := strings.Cut(rest, ")")

	timestamp, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedMarker, strings.TrimRight(line, "\r\n"))
	}
	return timestamp, nil
}
