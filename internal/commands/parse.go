// internal/commands/parse.go
package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Script is a parsed .commands file
type Script struct {
	Commands []Command
	// Lines maps each command to its 1-based source line
	Lines []int
}

// Summary describes what a script does
type Summary struct {
	Sends       int
	Sleeps      int
	Messages    uint64
	MinDuration time.Duration
	MaxDuration time.Duration
}

// Summary totals the commands in the script
func (s *Script) Summary() Summary {
	var sum Summary
	for _, cmd := range s.Commands {
		switch cmd.Kind {
		case KindSend:
			sum.Sends++
			sum.Messages += cmd.Count
		case KindSleep:
			sum.Sleeps++
		}
		lo, hi := cmd.Bounds()
		sum.MinDuration = addDuration(sum.MinDuration, lo)
		sum.MaxDuration = addDuration(sum.MaxDuration, hi)
	}
	return sum
}

// Parse reads a whole script. Blank lines are skipped.
func Parse(r io.Reader) (*Script, error) {
	script := &Script{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		script.Commands = append(script.Commands, cmd)
		script.Lines = append(script.Lines, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}

	return script, nil
}

// ParseLine parses one command such as sleep(100) or send("hi", 1, 5..10)
func ParseLine(line string) (Command, error) {
	line = strings.TrimSpace(line)
	open := strings.IndexByte(line, '(')
	if open <= 0 || !strings.HasSuffix(line, ")") {
		return Command{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	name := strings.ToLower(strings.TrimSpace(line[:open]))
	args, err := splitArgs(line[open+1 : len(line)-1])
	if err != nil {
		return Command{}, err
	}

	switch name {
	case "sleep":
		return parseSleep(args)
	case "send":
		return parseSend(args)
	default:
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

func parseSleep(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, fmt.Errorf("%w: sleep takes 1 argument, got %d", ErrArgumentCount, len(args))
	}
	ms, err := parseUint(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindSleep, Delay: Single(ms)}, nil
}

func parseSend(args []string) (Command, error) {
	if len(args) != 3 && len(args) != 4 {
		return Command{}, fmt.Errorf("%w: send takes 3 or 4 arguments, got %d", ErrArgumentCount, len(args))
	}

	message, err := parseString(args[0])
	if err != nil {
		return Command{}, err
	}
	count, err := parseUint(args[1])
	if err != nil {
		return Command{}, err
	}
	delay, err := ParseAmount(args[2])
	if err != nil {
		return Command{}, err
	}

	username := RandomUser
	if len(args) == 4 {
		if username, err = parseString(args[3]); err != nil {
			return Command{}, err
		}
	}

	return Command{
		Kind:     KindSend,
		Message:  message,
		Username: username,
		Count:    count,
		Delay:    delay,
	}, nil
}

// ParseAmount parses "N" or "A..B"
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	start, end, isRange := strings.Cut(s, "..")
	if !isRange {
		v, err := parseUint(s)
		if err != nil {
			return Amount{}, err
		}
		return Single(v), nil
	}

	lo, err := parseUint(start)
	if err != nil {
		return Amount{}, err
	}
	hi, err := parseUint(end)
	if err != nil {
		return Amount{}, err
	}
	if lo > hi {
		return Amount{}, fmt.Errorf("%w: %s", ErrInvalidRange, s)
	}
	return Between(lo, hi), nil
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, strings.TrimSpace(s))
	}
	return v, nil
}

func parseString(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' {
		return "", fmt.Errorf("%w: %s", ErrInvalidString, s)
	}
	v, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidString, s)
	}
	return v, nil
}

// splitArgs splits on commas outside of double-quoted strings
func splitArgs(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var (
		args    []string
		start   int
		inQuote bool
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inQuote && c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case !inQuote && c == ',':
			args = append(args, s[start:i])
			start = i + 1
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: unterminated string in %q", ErrInvalidString, s)
	}
	return append(args, s[start:]), nil
}
