// internal/credentials/errors.go
package credentials

import "errors"

var (
	// ErrMissingEnv indicates a required environment variable is not set
	ErrMissingEnv = errors.New("missing environment variable")

	// ErrCredentialsExist indicates the destination file is already present
	ErrCredentialsExist = errors.New("credentials file already exists")

	// ErrMissingField indicates a loaded credentials file lacks a required key
	ErrMissingField = errors.New("credentials file is missing a field")

	// ErrUnknownField indicates a loaded credentials file has keys we don't recognize
	ErrUnknownField = errors.New("credentials file has an unknown field")
)
