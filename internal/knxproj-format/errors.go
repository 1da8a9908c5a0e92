package knxprojformat

import "errors"

// Error taxonomy of the extraction subsystem. Every failure below the
// outer-container open is classified into one of these kinds; callers
// dispatch with errors.Is. I/O errors from opening the archive path itself
// are not wrapped and propagate as returned by the platform.
var (
	// ErrProjectNotFound reports that the outer container has no
	// signature entry.
	ErrProjectNotFound = errors.New("knxproj: signature file not found")

	// ErrInvalidPassword reports an absent password where one is
	// required, or a failed decryption of the inner container. Low-level
	// decryption failures are never leaked raw.
	ErrInvalidPassword = errors.New("knxproj: invalid password")

	// ErrUnexpectedFileContent reports a violated format assumption:
	// an undecodable or namespace-less master file, a non-numeric schema
	// version, or a missing project document.
	ErrUnexpectedFileContent = errors.New("knxproj: unexpected file content")
)
