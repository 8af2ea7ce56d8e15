package cache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrTruncated данные кончились раньше, чем ожидалось
	ErrTruncated = errors.New("cache: truncated data")
	// ErrRange значение не влезает в поле формата
	ErrRange = errors.New("cache: value out of range")
)

// Writer пишет поля подряд, little-endian, без выравнивания
type Writer struct {
	buf []byte
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Uint8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) Int8(v int8) { w.buf = append(w.buf, uint8(v)) }

func (w *Writer) Uint16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }

func (w *Writer) Uint32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

func (w *Writer) Uint64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }

// CString строка с нулём в конце. Нуль внутри строки сломал бы формат.
func (w *Writer) CString(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%w: string %q contains NUL", ErrRange, s)
	}
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
	return nil
}

// Count длина списка в u8
func (w *Writer) Count(n int, what string) error {
	if n > math.MaxUint8 {
		return fmt.Errorf("%w: %d %s (max %d)", ErrRange, n, what, math.MaxUint8)
	}
	w.Uint8(uint8(n))
	return nil
}

// Reader курсор по буферу. Каждое чтение сдвигает Offset.
type Reader struct {
	buf    []byte
	Offset int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining сколько байт осталось
func (r *Reader) Remaining() int { return len(r.buf) - r.Offset }

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.Offset, r.Remaining())
	}
	b := r.buf[r.Offset : r.Offset+n]
	r.Offset += n
	return b, nil
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) CString() (string, error) {
	end := bytes.IndexByte(r.buf[r.Offset:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, r.Offset)
	}
	s := string(r.buf[r.Offset : r.Offset+end])
	r.Offset += end + 1
	return s, nil
}
