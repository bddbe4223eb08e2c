package datastream

import "encoding/binary"

// window is a read-only cursor over buf[pos:end].
type window struct {
	buf []byte
	pos int
	end int
}

// newWindow validates offset and length against buf.
func newWindow(buf []byte, offset, length int) (*window, error) {
	if offset < 0 || length < 0 || offset > len(buf) || length > len(buf)-offset {
		return nil, &WindowError{BufLen: len(buf), Offset: offset, Length: length}
	}
	return &window{buf: buf, pos: offset, end: offset + length}, nil
}

func (w *window) remaining() int { return w.end - w.pos }

func (w *window) empty() bool { return w.pos >= w.end }

// byteAt returns the byte i positions past the cursor. Callers check
// remaining() first.
func (w *window) byteAt(i int) byte { return w.buf[w.pos+i] }

// uint16At reads a big-endian uint16 starting i positions past the cursor.
func (w *window) uint16At(i int) int {
	return int(binary.BigEndian.Uint16(w.buf[w.pos+i : w.pos+i+2]))
}

// advance moves the cursor n bytes. It reports false, leaving the cursor
// untouched, when fewer than n bytes remain.
func (w *window) advance(n int) bool {
	if n > w.remaining() {
		return false
	}
	w.pos += n
	return true
}
