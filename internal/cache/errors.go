package cache

import "errors"

var (
	// ErrInvalidConfiguration is returned by New when Config cannot describe a usable cache.
	ErrInvalidConfiguration = errors.New("cache: invalid configuration")

	// ErrInvalidTTL reports a TTL that is zero or negative.
	ErrInvalidTTL = newConfigError("ttl must be greater than 0")

	// ErrInvalidSweepInterval reports a negative sweep interval.
	ErrInvalidSweepInterval = newConfigError("sweep interval must not be negative")
)

// configError is a sentinel that also matches ErrInvalidConfiguration.
type configError struct {
	msg string
}

func newConfigError(msg string) error {
	return &configError{msg: msg}
}

func (e *configError) Error() string {
	return ErrInvalidConfiguration.Error() + ": " + e.msg
}

func (e *configError) Unwrap() error {
	return ErrInvalidConfiguration
}
