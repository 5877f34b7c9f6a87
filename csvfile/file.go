package csvfile

import (
	"bufio"

	"go.uber.org/multierr"
)

const defaultBufferSize = 4 * 1024

// writeSide is the output half of a handle. sink is nil while the file is
// closed between writes in safe mode.
type writeSide struct {
	sink    Sink
	buf     *bufio.Writer
	line    []byte
	headers [][]string
}

func createFile(fs FS, path string, mode Mode) (*writeSide, error) {
	var (
		sink Sink
		err  error
	)
	if mode == Overwrite {
		sink, err = fs.Create(path)
	} else {
		sink, err = fs.Append(path)
	}
	if err != nil {
		return nil, err
	}
	return &writeSide{
		sink: sink,
		buf:  bufio.NewWriterSize(sink, defaultBufferSize),
	}, nil
}

func (w *writeSide) isOpen() bool {
	return w.sink != nil
}

func (w *writeSide) reopen(fs FS, path string) error {
	sink, err := fs.Append(path)
	if err != nil {
		return err
	}
	w.sink = sink
	w.buf.Reset(sink)
	return nil
}

func (w *writeSide) writeRow(fields []string) error {
	w.line = AppendEncode(w.line[:0], fields)
	_, err := w.buf.Write(w.line)
	return err
}

// close flushes buffered rows to stable storage and releases the sink.
func (w *writeSide) close() error {
	if w.sink == nil {
		return nil
	}
	err := w.buf.Flush()
	err = multierr.Append(err, w.sink.Sync())
	err = multierr.Append(err, w.sink.Close())
	w.sink = nil
	return err
}

// readSide is the input half of a handle.
type readSide struct {
	src    Source
	cursor *Cursor
}

func openFile(fs FS, path string) (*readSide, error) {
	src, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	return &readSide{
		src:    src,
		cursor: NewCursor(src),
	}, nil
}

func (r *readSide) close() error {
	return r.src.Close()
}
