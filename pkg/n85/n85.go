// Package n85 implements N85, a base-85 encoding whose alphabet is the
// contiguous printable ASCII range '(' through '}' with the backslash removed.
//
// Every 4 input bytes, read as a little-endian integer, become 5 symbols with
// the least significant digit first. A trailing group of 1, 2 or 3 bytes
// becomes 2, 3 or 4 symbols. Encode and Decode work on caller-provided
// buffers and never allocate.
package n85

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrOutputTooShort is returned when dst cannot hold the result.
	ErrOutputTooShort = errors.New("n85: output buffer too short")
	// ErrInvalidLength is returned when len(src)%5 == 1, which no encoding produces.
	ErrInvalidLength = errors.New("n85: invalid input length")
	// ErrInvalidChar is returned when src holds a byte outside Alphabet.
	ErrInvalidChar = errors.New("n85: invalid character")
)

// EncodedLen returns the length of the encoding of n source bytes.
func EncodedLen(n int) int {
	l := n * 5 / 4
	if n%4 != 0 {
		l++
	}
	return l
}

// DecodedLen returns the length of the decoding of n encoded bytes.
func DecodedLen(n int) int {
	return n * 4 / 5
}

// Encode encodes src into the first EncodedLen(len(src)) bytes of dst and
// returns that length. Bytes of dst past that length are left untouched.
func Encode(dst, src []byte) (int, error) {
	n := EncodedLen(len(src))
	if len(dst) < n {
		return 0, ErrOutputTooShort
	}

	var si, di int
	for ; si+4 <= len(src); si += 4 {
		putGroup(dst[di:di+5], binary.LittleEndian.Uint32(src[si:]))
		di += 5
	}

	var v uint32
	switch len(src) - si {
	case 3:
		v |= uint32(src[si+2]) << 16
		fallthrough
	case 2:
		v |= uint32(src[si+1]) << 8
		fallthrough
	case 1:
		v |= uint32(src[si])
		putGroup(dst[di:n], v)
	}

	return n, nil
}

// Decode decodes src into the first DecodedLen(len(src)) bytes of dst and
// returns that length.
//
// The whole of src is validated before anything is written, so dst is left
// unmodified when an error is returned.
func Decode(dst, src []byte) (int, error) {
	if len(src)%5 == 1 {
		return 0, ErrInvalidLength
	}
	n := DecodedLen(len(src))
	if len(dst) < n {
		return 0, ErrOutputTooShort
	}
	if IndexInvalid(src) >= 0 {
		return 0, ErrInvalidChar
	}

	var si, di int
	for ; si+5 <= len(src); si += 5 {
		binary.LittleEndian.PutUint32(dst[di:], groupValue(src[si:si+5]))
		di += 4
	}

	switch rem := src[si:]; len(rem) {
	case 0:
	case 2, 3, 4:
		v := groupValue(rem)
		for i := 0; i < len(rem)-1; i++ {
			dst[di+i] = byte(v >> (8 * i))
		}
	default:
		return 0, ErrOutputTooShort
	}

	return n, nil
}

// IndexInvalid returns the offset of the first byte of src that is not part
// of Alphabet, or -1 if there is none.
func IndexInvalid(src []byte) int {
	for i, c := range src {
		if !isValid(c) {
			return i
		}
	}
	return -1
}

// Validate reports whether src could be decoded, without decoding it.
func Validate(src []byte) error {
	if len(src)%5 == 1 {
		return ErrInvalidLength
	}
	if IndexInvalid(src) >= 0 {
		return ErrInvalidChar
	}
	return nil
}

// EncodeToString returns the N85 encoding of src.
func EncodeToString(src []byte) string {
	dst := make([]byte, EncodedLen(len(src)))
	n, _ := Encode(dst, src)
	return string(dst[:n])
}

// DecodeString returns the bytes represented by the N85 string s.
func DecodeString(s string) ([]byte, error) {
	dst := make([]byte, DecodedLen(len(s)))
	n, err := Decode(dst, []byte(s))
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// putGroup writes len(dst) base-85 digits of v, least significant first.
func putGroup(dst []byte, v uint32) {
	for i := range dst {
		dst[i] = toChar(byte(v % 85))
		v /= 85
	}
}

// groupValue accumulates the digits of g, least significant first. Values
// past 32 bits wrap, which keeps exactly the low bytes a group can carry.
func groupValue(g []byte) uint32 {
	var v uint32
	for i := len(g) - 1; i >= 0; i-- {
		v = v*85 + uint32(toDigit(g[i]))
	}
	return v
}
