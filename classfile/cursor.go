package classfile

import (
	"encoding/binary"
	"math"
)

// reader is a bounds-checked big-endian cursor over an in-memory buffer.
// The first failure sticks: later reads return zero values and leave err
// untouched, so callers check err once after a group of reads.
type reader struct {
	buf  []byte
	pos  int
	base int
	err  error
}

func newReader(b []byte) *reader {
	return &reader{buf: b}
}

// offset is the absolute position of the next byte to be read.
func (r *reader) offset() int {
	return r.base + r.pos
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.remaining() < n {
		r.err = &TruncatedInputError{Offset: r.offset(), Needed: n, Available: r.remaining()}
		return false
	}
	return true
}

func (r *reader) readU1() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.buf[r.pos]
	r.pos++
	return v
}

func (r *reader) readU2() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) readU4() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) readU8() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v
}

// readBytes returns a copy so decoded values never alias the input buffer.
// Zero-length reads yield nil.
func (r *reader) readBytes(n int) []byte {
	if !r.need(n) || n == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out
}

// sub carves the next n bytes into a length-bounded reader that reports
// absolute offsets. The parent advances past all n bytes immediately.
func (r *reader) sub(n int) *reader {
	if !r.need(n) {
		return &reader{err: r.err}
	}
	s := &reader{buf: r.buf[r.pos : r.pos+n], base: r.offset()}
	r.pos += n
	return s
}

// fits checks that count elements of at least minSize bytes each can still
// be read, before the caller allocates room for them.
func (r *reader) fits(field string, count, minSize int) bool {
	if r.err != nil {
		return false
	}
	needed := count * minSize
	if needed > r.remaining() {
		r.err = &CountOverflowError{
			Offset:    r.offset(),
			Field:     field,
			Count:     count,
			Needed:    needed,
			Available: r.remaining(),
		}
		return false
	}
	return true
}

// readList reads count elements with read. Zero counts yield a nil slice.
func readList[T any](r *reader, field string, count, minSize int, read func() T) []T {
	if !r.fits(field, count, minSize) || count == 0 {
		return nil
	}
	out := make([]T, count)
	for i := range out {
		out[i] = read()
		if r.err != nil {
			return nil
		}
	}
	return out
}

// writer is the encoding counterpart of reader. Writes never fail on their
// own; err records the first invariant violation found while encoding.
type writer struct {
	buf []byte
	err error
}

func (w *writer) offset() int {
	return len(w.buf)
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) writeU1(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) writeU2(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *writer) writeU4(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *writer) writeU8(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *writer) writeBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// writeCount writes a u1 or u2 element count, failing if n does not fit.
func (w *writer) writeCount(field string, n int, width int) {
	limit := math.MaxUint16
	if width == 1 {
		limit = math.MaxUint8
	}
	if n > limit {
		w.fail(&InvalidStructureError{Offset: w.offset(), Field: field, Reason: "too many entries to encode"})
		return
	}
	if width == 1 {
		w.writeU1(uint8(n))
		return
	}
	w.writeU2(uint16(n))
}

// beginLength reserves a u4 length slot and returns its position for endLength.
func (w *writer) beginLength() int {
	pos := len(w.buf)
	w.writeU4(0)
	return pos
}

func (w *writer) endLength(field string, pos int) {
	n := len(w.buf) - pos - 4
	if uint64(n) > math.MaxUint32 {
		w.fail(&InvalidStructureError{Offset: pos, Field: field, Reason: "payload exceeds 4 GiB"})
		return
	}
	binary.BigEndian.PutUint32(w.buf[pos:], uint32(n))
}
