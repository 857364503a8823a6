package ambient

import "errors"

var (
	// ErrUnknownParameter is returned for parameter names or values outside
	// the Parameter enumeration.
	ErrUnknownParameter = errors.New("ambient: unknown parameter")
	// ErrInvalidValue is returned by SetParameter for NaN values.
	ErrInvalidValue = errors.New("ambient: parameter value is not a number")
	// ErrUnknownMode is returned by ParseMode for unrecognised names.
	ErrUnknownMode = errors.New("ambient: unknown mode")
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("ambient: invalid sample rate")
	// ErrInvalidBlockSize is returned for non-positive block or control sizes.
	ErrInvalidBlockSize = errors.New("ambient: invalid block size")
	// ErrInvalidChannels is returned for channel counts other than 1 or 2.
	ErrInvalidChannels = errors.New("ambient: channels must be 1 or 2")
	// ErrClosed is returned by control methods after Close.
	ErrClosed = errors.New("ambient: engine closed")
)
