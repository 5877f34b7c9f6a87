package csvfile

import (
	"io"
	"os"
)

// Sink is an output stream owned by a Handle.
type Sink interface {
	io.Writer
	io.Closer

	Sync() error
}

// Source is an input stream owned by a Handle.
type Source interface {
	io.Reader
	io.Closer
}

// FS opens the byte streams a Handle works on. Each call returns a new
// stream; the caller owns it and must close it.
type FS interface {
	// Create opens path for writing, truncating or creating it.
	Create(path string) (Sink, error)
	// Append opens path for writing at its end, creating it if absent.
	Append(path string) (Sink, error)
	// Open opens an existing path for reading.
	Open(path string) (Source, error)
}

// OSFS is the FS backed by the os package.
type OSFS struct{}

func (OSFS) Create(path string) (Sink, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (OSFS) Append(path string) (Sink, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (OSFS) Open(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return file, nil
}
