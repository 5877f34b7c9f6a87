// Package csvfile reads and writes comma separated files through a Handle
// that owns exactly one underlying file for its lifetime.
//
// A Handle is opened in one Mode. Overwrite and Append handles accept
// SetHeader and WriteRow; Read handles accept ReadAll. Any other call
// returns an *InvalidOperationError.
//
// In safe mode (the default) the file is closed after every write and
// reopened for appending before the next one, so a crash loses at most the
// row being written. With safe mode off the file stays open and buffered
// until Close.
//
// A Handle must not be used from several goroutines at once.
package csvfile

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/multierr"
)

// Extension is appended to paths that do not already end with it.
const Extension = ".csv"

const defaultName = "output" + Extension

var errUnknownMode = errors.New("unknown mode")

// Mode fixes which operations a Handle allows.
type Mode int

const (
	// Overwrite truncates or creates the file.
	Overwrite Mode = iota
	// Append writes at the end of the file, creating it if absent.
	Append
	// Read opens an existing file for input only.
	Read
)

func (m Mode) String() string {
	switch m {
	case Overwrite:
		return "overwrite"
	case Append:
		return "append"
	case Read:
		return "read"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode named by s, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "overwrite":
		return Overwrite, nil
	case "append":
		return Append, nil
	case "read":
		return Read, nil
	}
	return 0, fmt.Errorf("csvfile: %w %q", errUnknownMode, s)
}

// Option configures a Handle at Open.
type Option func(*Handle)

// WithFS sets the file system the handle opens its file on.
func WithFS(fs FS) Option {
	return func(h *Handle) {
		if fs != nil {
			h.fs = fs
		}
	}
}

// WithLogger sets the logger that receives diagnostics such as header and
// row field count mismatches.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handle) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSafeMode sets the initial safe mode. See Handle.SetSafeMode.
func WithSafeMode(safe bool) Option {
	return func(h *Handle) {
		h.safeMode = safe
	}
}

type Handle struct {
	path     string
	mode     Mode
	fs       FS
	logger   *slog.Logger
	safeMode bool
	closed   bool

	// Exactly one side is set, chosen by mode.
	w *writeSide
	r *readSide
}

// New opens path in Append mode.
func New(path string, opts ...Option) (*Handle, error) {
	return Open(path, Append, opts...)
}

// Open opens path in the given mode, appending Extension to path if it is
// missing. On failure it returns an *OpenError and no handle.
func Open(path string, mode Mode, opts ...Option) (*Handle, error) {
	h := &Handle{
		path:     normalizePath(path),
		mode:     mode,
		fs:       OSFS{},
		logger:   slog.Default(),
		safeMode: true,
	}
	for _, opt := range opts {
		opt(h)
	}

	var err error
	switch mode {
	case Overwrite, Append:
		h.w, err = createFile(h.fs, h.path, mode)
	case Read:
		h.r, err = openFile(h.fs, h.path)
	default:
		err = errUnknownMode
	}
	if err != nil {
		return nil, &OpenError{Path: h.path, Mode: mode, Err: err}
	}
	h.logger.Debug("opened csv file", "path", h.path, "mode", mode.String(), "safe", h.safeMode)
	return h, nil
}

// With opens a handle, calls fn with it and closes it on every exit path,
// including a panic in fn. The error from fn and from Close are combined.
func With(path string, mode Mode, fn func(*Handle) error, opts ...Option) (err error) {
	h, err := Open(path, mode, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, h.Close())
	}()
	return fn(h)
}

func normalizePath(path string) string {
	if path == "" {
		return defaultName
	}
	if strings.HasSuffix(path, Extension) {
		return path
	}
	return path + Extension
}

// Path returns the normalized file path.
func (h *Handle) Path() string {
	return h.path
}

func (h *Handle) Mode() Mode {
	return h.mode
}

func (h *Handle) SafeMode() bool {
	return h.safeMode
}

// SetSafeMode switches the durability policy. It never touches the file;
// the change applies from the next write.
func (h *Handle) SetSafeMode(safe bool) {
	h.safeMode = safe
}

// Header returns the first header set on the handle, which rows are checked
// against, or nil.
func (h *Handle) Header() []string {
	if h.w == nil || len(h.w.headers) == 0 {
		return nil
	}
	return append([]string(nil), h.w.headers[0]...)
}

// Headers returns every header line set on the handle in call order.
func (h *Handle) Headers() [][]string {
	if h.w == nil {
		return nil
	}
	headers := make([][]string, len(h.w.headers))
	for i, hdr := range h.w.headers {
		headers[i] = append([]string(nil), hdr...)
	}
	return headers
}

// Close releases the file, flushing buffered rows first. Calling Close
// again returns nil.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	var err error
	if h.w != nil {
		err = h.w.close()
	}
	if h.r != nil {
		err = multierr.Append(err, h.r.close())
	}
	h.logger.Debug("closed csv file", "path", h.path)
	return err
}

// SetHeader records fields as a header and writes it as a line. Calling it
// again writes another header line; rows are still checked against the
// first one.
func (h *Handle) SetHeader(fields []string) error {
	w, err := h.writer("SetHeader")
	if err != nil {
		return err
	}
	w.headers = append(w.headers, append([]string(nil), fields...))
	return h.write(w, fields)
}

// WriteRow appends fields as one line. A field count that differs from the
// header is logged as a warning and the row is written anyway.
func (h *Handle) WriteRow(fields []string) error {
	w, err := h.writer("WriteRow")
	if err != nil {
		return err
	}
	if len(w.headers) > 0 && len(fields) != len(w.headers[0]) {
		h.logger.Warn("header and row field count mismatch",
			"path", h.path,
			"header", len(w.headers[0]),
			"row", len(fields))
	}
	return h.write(w, fields)
}

// ReadAll decodes the remaining records in file order. With ignoreHeader
// the first record is dropped. A malformed record aborts the read with a
// *MalformedRowError and no rows.
func (h *Handle) ReadAll(ignoreHeader bool) ([][]string, error) {
	if err := h.check("ReadAll", h.r != nil); err != nil {
		return nil, err
	}
	rows, err := h.r.cursor.drain()
	if err != nil {
		return nil, err
	}
	if ignoreHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

func (h *Handle) write(w *writeSide, fields []string) error {
	if !w.isOpen() {
		if err := w.reopen(h.fs, h.path); err != nil {
			return &OpenError{Path: h.path, Mode: Append, Err: err}
		}
		h.logger.Debug("reopened csv file", "path", h.path)
	}
	err := w.writeRow(fields)
	if h.safeMode {
		err = multierr.Append(err, w.close())
	}
	return err
}

func (h *Handle) writer(op string) (*writeSide, error) {
	if err := h.check(op, h.w != nil); err != nil {
		return nil, err
	}
	return h.w, nil
}

func (h *Handle) check(op string, allowed bool) error {
	if h.closed {
		return &InvalidOperationError{Op: op, Mode: h.mode, Err: ErrClosed}
	}
	if !allowed {
		return &InvalidOperationError{Op: op, Mode: h.mode, Err: ErrWrongMode}
	}
	return nil
}
