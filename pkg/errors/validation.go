package errors

import (
	"net"
	"strings"
	"unicode"
)

// ValidatePath validates a data file path supplied by a user or config file.
// Relative and absolute paths are both accepted; the checks only reject
// values that can never name a readable file.
//
// Validation rules:
//   - Path cannot be empty or blank
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidatePrefix validates an output prefix for the three .dat files.
// An empty prefix is allowed and writes into the working directory.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	for _, r := range prefix {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "prefix contains invalid characters")
		}
	}
	return nil
}

// ValidateAddr validates a host:port network address such as a Redis endpoint.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "address cannot be empty")
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid address %q", addr)
	}
	if port == "" {
		return New(ErrCodeInvalidConfig, "address %q has no port", addr)
	}
	return nil
}
