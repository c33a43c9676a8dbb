package tensorio

import "errors"

var (
	// ErrNotFound is returned by the importers when the artifact does not exist.
	// The OS cause is kept in the chain, so errors.Is(err, fs.ErrNotExist) also holds.
	ErrNotFound = errors.New("tensorio: artifact not found")

	// ErrFormat signals a corrupt artifact or one whose stored kind, count or
	// shape disagrees with the tensor the factory produced.
	ErrFormat = errors.New("tensorio: malformed artifact")

	// ErrUnsupported is returned for an unknown compression codec or tensor kind.
	ErrUnsupported = errors.New("tensorio: unsupported")
)
