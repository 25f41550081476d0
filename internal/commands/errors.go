// internal/commands/errors.go
package commands

import "errors"

var (
	// ErrUnknownCommand indicates a command name other than send or sleep
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMalformedLine indicates a line that is not of the form name(args)
	ErrMalformedLine = errors.New("malformed command line")

	// ErrArgumentCount indicates the wrong number of arguments for a command
	ErrArgumentCount = errors.New("wrong number of arguments")

	// ErrInvalidNumber indicates a numeric argument could not be parsed
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidString indicates a string argument is not a quoted literal
	ErrInvalidString = errors.New("invalid string literal")

	// ErrInvalidRange indicates a delay range whose start exceeds its end
	ErrInvalidRange = errors.New("range start exceeds range end")
)
