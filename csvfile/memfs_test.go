package csvfile

import (
	"bytes"
	"os"
)

// memFS is an in-memory FS that counts stream lifecycle events.
type memFS struct {
	files map[string]*bytes.Buffer

	opens  int
	closes int
	syncs  int

	appendErr error
}

func newMemFS() *memFS {
	return &memFS{files: map[string]*bytes.Buffer{}}
}

func (fs *memFS) Create(path string) (Sink, error) {
	buf := &bytes.Buffer{}
	fs.files[path] = buf
	fs.opens++
	return &memSink{fs: fs, buf: buf}, nil
}

func (fs *memFS) Append(path string) (Sink, error) {
	if fs.appendErr != nil {
		return nil, fs.appendErr
	}
	buf, ok := fs.files[path]
	if !ok {
		buf = &bytes.Buffer{}
		fs.files[path] = buf
	}
	fs.opens++
	return &memSink{fs: fs, buf: buf}, nil
}

func (fs *memFS) Open(path string) (Source, error) {
	buf, ok := fs.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	fs.opens++
	return &memSource{fs: fs, r: bytes.NewReader(buf.Bytes())}, nil
}

func (fs *memFS) content(path string) string {
	buf, ok := fs.files[path]
	if !ok {
		return ""
	}
	return buf.String()
}

// open reports how many streams are currently open.
func (fs *memFS) open() int {
	return fs.opens - fs.closes
}

type memSink struct {
	fs     *memFS
	buf    *bytes.Buffer
	closed bool
}

func (s *memSink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.buf.Write(p)
}

func (s *memSink) Sync() error {
	if s.closed {
		return os.ErrClosed
	}
	s.fs.syncs++
	return nil
}

func (s *memSink) Close() error {
	if s.closed {
		return os.ErrClosed
	}
	s.closed = true
	s.fs.closes++
	return nil
}

type memSource struct {
	fs *memFS
	r  *bytes.Reader
}

func (s *memSource) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *memSource) Close() error {
	s.fs.closes++
	return nil
}
