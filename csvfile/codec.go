package csvfile

import (
	"strings"
)

// Encode returns fields as one comma separated line terminated by '\n'.
// Fields containing a comma, a quote, '\n' or '\r' are quoted and their
// quotes doubled.
func Encode(fields []string) string {
	return string(AppendEncode(nil, fields))
}

// AppendEncode appends the encoded line for fields to dst.
func AppendEncode(dst []byte, fields []string) []byte {
	// A lone empty field would otherwise be an empty line, which decodes to
	// a zero-length row.
	if len(fields) == 1 && fields[0] == "" {
		return append(dst, '"', '"', '\n')
	}
	for i, field := range fields {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendField(dst, field)
	}
	return append(dst, '\n')
}

func appendField(dst []byte, field string) []byte {
	if !fieldNeedsQuote(field) {
		return append(dst, field...)
	}
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == '"' {
			dst = append(dst, field[start:i+1]...)
			dst = append(dst, '"')
			start = i + 1
		}
	}
	dst = append(dst, field[start:]...)
	return append(dst, '"')
}

func fieldNeedsQuote(field string) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '"', ',', '\n', '\r':
			return true
		}
	}
	return false
}

// Decode parses a single record. A trailing "\n" or "\r\n" is ignored, so
// Decode(Encode(fields)) returns fields. An empty record is a zero-length
// row. Errors are *MalformedRowError.
func Decode(line string) ([]string, error) {
	return decodeRecord(trimTerminator(line), 1)
}

func trimTerminator(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1]
	}
	return s
}

// decodeRecord splits s into fields. line is the physical line s starts on
// and is only used for error positions.
func decodeRecord(s string, line int) ([]string, error) {
	fields := make([]string, 0, 8)
	if s == "" {
		return fields, nil
	}

	var buf []byte
	column := 1
	i := 0
	for {
		if i < len(s) && s[i] == '"' {
			startLine, startColumn := line, column
			buf = buf[:0]
			i++
			column++
			for {
				if i >= len(s) {
					return nil, &MalformedRowError{Line: startLine, Column: startColumn, Err: ErrUnterminatedQuote}
				}
				c := s[i]
				if c == '"' {
					// Doubled quote inside quotes is an escaped quote.
					if i+1 < len(s) && s[i+1] == '"' {
						buf = append(buf, '"')
						i += 2
						column += 2
						continue
					}
					i++
					column++
					break
				}
				buf = append(buf, c)
				i++
				if c == '\n' {
					line++
					column = 1
				} else {
					column++
				}
			}
			fields = append(fields, string(buf))
			if i == len(s) {
				return fields, nil
			}
			if s[i] != ',' {
				return nil, &MalformedRowError{Line: line, Column: column, Err: ErrQuoteTrailer}
			}
			i++
			column++
			continue
		}

		end := len(s)
		next := strings.IndexByte(s[i:], ',')
		if next >= 0 {
			end = i + next
		}
		if q := strings.IndexByte(s[i:end], '"'); q >= 0 {
			return nil, &MalformedRowError{Line: line, Column: column + q, Err: ErrBareQuote}
		}
		fields = append(fields, s[i:end])
		column += end - i
		if next < 0 {
			return fields, nil
		}
		i = end + 1
		column++
	}
}
