package csvfile

import (
	"bufio"
	"bytes"
	"io"
)

// Cursor reads records from a stream one at a time. A record spans several
// physical lines when a quoted field contains a newline.
type Cursor struct {
	src  *bufio.Reader
	buf  []byte
	line int
	row  []string
	done bool
}

func NewCursor(r io.Reader) *Cursor {
	return &Cursor{
		src: bufio.NewReader(r),
	}
}

// Next decodes the next record. It returns false with a nil error at the
// end of the stream. Once an error is returned the cursor stays exhausted.
func (c *Cursor) Next() (bool, error) {
	if c.done {
		return false, nil
	}
	c.buf = c.buf[:0]
	start := c.line + 1
	quotes := 0
	for {
		chunk, err := c.src.ReadSlice('\n')
		c.buf = append(c.buf, chunk...)
		quotes += bytes.Count(chunk, []byte{'"'})
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == nil {
			c.line++
			// An odd quote count means a quoted field is still open.
			if quotes%2 == 0 {
				break
			}
			continue
		}
		c.done = true
		if err != io.EOF {
			return false, err
		}
		if len(c.buf) == 0 {
			return false, nil
		}
		if len(chunk) > 0 {
			c.line++
		}
		break
	}

	row, err := decodeRecord(trimTerminator(string(c.buf)), start)
	if err != nil {
		c.done = true
		c.row = nil
		return false, err
	}
	c.row = row
	return true, nil
}

// Row returns the record decoded by the last successful Next.
func (c *Cursor) Row() []string {
	return c.row
}

// Line reports how many physical lines have been consumed.
func (c *Cursor) Line() int {
	return c.line
}

// ReadAll drains r and returns every record in file order. The first
// malformed record aborts the read.
func ReadAll(r io.Reader) ([][]string, error) {
	return NewCursor(r).drain()
}

func (c *Cursor) drain() ([][]string, error) {
	var rows [][]string
	for {
		ok, err := c.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, c.Row())
	}
}
