package config

import "errors"

var (
	// ErrEmptyPath is returned by Load for an empty path.
	ErrEmptyPath = errors.New("config: empty path")

	// ErrUnsupportedFormat is returned for file extensions other than .yaml, .yml and .json.
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrLoadFailed wraps read and parse failures.
	ErrLoadFailed = errors.New("config: load failed")

	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("config: invalid")
)
