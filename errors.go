package irtim

import "errors"

var (
	// ErrConfig is matched by every configuration failure. Configuration
	// errors are fatal: no driver is returned alongside them.
	ErrConfig = errors.New("irtim: invalid configuration")

	// ErrBusy is returned by Load when a transmission is in progress.
	ErrBusy = errors.New("irtim: transmission in progress")

	// ErrFrameTooLong is returned by Load when a frame has more than
	// MaxFramePairs pairs.
	ErrFrameTooLong = errors.New("irtim: frame too long")

	// ErrUnsupported is returned by setup routines with no hardware binding.
	ErrUnsupported = errors.New("irtim: not supported on this hardware")
)

// ConfigError describes why a driver could not be configured.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return "irtim: " + e.Op + ": invalid configuration"
	}
	return "irtim: " + e.Op + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports true for ErrConfig so callers need not know the cause.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
