// internal/credentials/store.go
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Encode renders creds as TOML, one `key = "value"` line per field
func Encode(creds *Credentials) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(creds); err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteNew writes creds to path, failing with ErrCredentialsExist if the
// file is already there. An existing file is never modified.
func WriteNew(path string, creds *Credentials) error {
	data, err := Encode(creds)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrCredentialsExist, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load reads a credentials file. All five keys must be present and no
// other keys are accepted.
func Load(path string) (*Credentials, error) {
	var creds Credentials
	md, err := toml.DecodeFile(path, &creds)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, undecoded[0].String())
	}

	for _, key := range []string{"client_id", "client_secret", "user_id", "auth_token", "refresh_token"} {
		if !md.IsDefined(key) {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	return &creds, nil
}
