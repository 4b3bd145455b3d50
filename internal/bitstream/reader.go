package bitstream

import "errors"

// ErrShortRead is returned when a read asks for more bits than remain.
var ErrShortRead = errors.New("bitstream: not enough bits")

// Reader is an MSB-first bit cursor over a byte slice.
type Reader struct {
	data   []byte
	bitPos uint64
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBits consumes n bits (1..64) and returns them as an unsigned integer
// whose most significant bit is the first bit read. The cursor does not move
// when the read fails.
func (r *Reader) ReadBits(n uint) (uint64, error) {
	if n == 0 || n > 64 {
		return 0, errors.New("bitstream: read width must be 1..64")
	}
	if uint64(n) > r.Remaining() {
		return 0, ErrShortRead
	}
	var val uint64
	for i := uint(0); i < n; i++ {
		b := r.data[r.bitPos/8]
		bit := (b >> (7 - r.bitPos%8)) & 1
		val = val<<1 | uint64(bit)
		r.bitPos++
	}
	return val, nil
}

// Offset returns the number of bits consumed so far.
func (r *Reader) Offset() uint64 { return r.bitPos }

// Len returns the total number of bits in the underlying data.
func (r *Reader) Len() uint64 { return uint64(len(r.data)) * 8 }

func (r *Reader) Remaining() uint64 { return r.Len() - r.bitPos }
