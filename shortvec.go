package soltx

import (
	"errors"
	"io"
)

// AppendShortVec appends the compact-u16 encoding of v to buf and returns
// the extended slice. Values 0-0x7f use 1 byte, 0x80-0x3fff use 2 bytes,
// 0x4000-0xffff use 3 bytes.
func AppendShortVec(buf []byte, v int) []byte {
	if v < 0 || v > 0xffff {
		panic("compact-u16 value out of range")
	}
	if v < 0x80 {
		return append(buf, byte(v))
	}
	if v < 0x4000 {
		return append(buf, byte(v&0x7f)|0x80, byte(v>>7))
	}
	return append(buf, byte(v&0x7f)|0x80, byte((v>>7)&0x7f)|0x80, byte(v>>14))
}

// DecodeShortVec decodes a compact-u16 value from the front of data and
// returns the value and the number of bytes consumed. Only canonical
// encodings are accepted: a zero terminal byte after a continuation byte
// (an alias for a shorter encoding), a third byte with its continuation
// bit set, or a value past 0xffff all fail, so that re-encoding a decoded
// value always reproduces the input bytes.
func DecodeShortVec(data []byte) (int, int, error) {
	if len(data) == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	b0 := data[0]
	if b0 < 0x80 {
		return int(b0), 1, nil
	}
	if len(data) < 2 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	b1 := data[1]
	if b1 == 0 {
		return 0, 0, errors.New("compact-u16 not canonical")
	}
	if b1 < 0x80 {
		return int(b0&0x7f) | int(b1)<<7, 2, nil
	}
	if len(data) < 3 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	b2 := data[2]
	if b2 >= 0x80 {
		return 0, 0, errors.New("compact-u16 too long")
	}
	if b2 == 0 {
		return 0, 0, errors.New("compact-u16 not canonical")
	}
	if b2 > 3 {
		return 0, 0, errors.New("compact-u16 overflow")
	}
	return int(b0&0x7f) | int(b1&0x7f)<<7 | int(b2)<<14, 3, nil
}
