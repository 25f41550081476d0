// internal/cmdir/file.go
package cmdir

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	// InputExt is the extension of recorded command logs
	InputExt = ".cmdir"
	// OutputExt is the extension of converted command files
	OutputExt = ".commands"
)

// OutputPath returns the .commands sibling of a .cmdir path
func OutputPath(path string) (string, error) {
	if !strings.HasSuffix(path, InputExt) {
		return "", fmt.Errorf("%w: %s", ErrNotCmdir, path)
	}
	return strings.TrimSuffix(path, InputExt) + OutputExt, nil
}

// ConvertFile converts path into its .commands sibling and removes path.
// The output is written atomically, so on any error the input is left in
// place and no partial output exists.
func ConvertFile(path string) (string, Result, error) {
	outPath, err := OutputPath(path)
	if err != nil {
		return "", Result{}, err
	}

	if _, err := os.Stat(outPath); err == nil {
		return "", Result{}, fmt.Errorf("%w: %s", ErrAlreadyConverted, outPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", Result{}, fmt.Errorf("failed to check %s: %w", outPath, err)
	}

	in, err := os.Open(path)
	if err != nil {
		return "", Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var buf bytes.Buffer
	result, err := Convert(in, &buf)
	in.Close()
	if err != nil {
		return "", result, fmt.Errorf("failed to convert %s: %w", path, err)
	}

	if err := atomic.WriteFile(outPath, &buf); err != nil {
		return "", result, fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if err := os.Remove(path); err != nil {
		return outPath, result, fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return outPath, result, nil
}
