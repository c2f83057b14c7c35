package gridmap

import (
	"encoding/binary"
	"math"
)

// reader walks a decompressed payload, tracking the offset for error
// reporting. All multi-byte values are little-endian.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) truncated(what string) error {
	return &ParseError{Code: ErrCodeTruncated, Message: "unexpected end of payload reading " + what, Offset: r.off}
}

func (r *reader) bytes(n int, what string) ([]byte, error) {
	if r.remaining() < n {
		return nil, r.truncated(what)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8(what string) (byte, error) {
	b, err := r.bytes(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16(what string) (uint16, error) {
	b, err := r.bytes(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// u32Len reads a section length as an int.
func (r *reader) u32Len(what string) (int, error) {
	b, err := r.bytes(4, what)
	if err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) i32(what string) (int32, error) {
	b, err := r.bytes(4, what)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) f32(what string) (float64, error) {
	b, err := r.bytes(4, what)
	if err != nil {
		return 0, err
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
}

func (r *reader) str(what string) (string, error) {
	n, err := r.u8(what + " length")
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n), what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
