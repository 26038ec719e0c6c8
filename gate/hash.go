package gate

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// hasher feeds a length-prefixed byte stream into an xxhash digest so that
// adjacent fields cannot collide by shifting bytes between them.
type hasher struct {
	d *xxhash.Digest
}

func (h hasher) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, _ = h.d.Write(b[:])
}

func (h hasher) str(s string) {
	h.u64(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h hasher) ints(v []int) {
	h.u64(uint64(len(v)))
	for _, i := range v {
		h.u64(uint64(i))
	}
}

// f64 folds -0 onto +0 because the two compare equal.
func (h hasher) f64(f float64) {
	if f == 0 {
		f = 0
	}
	h.u64(math.Float64bits(f))
}

func (h hasher) floats(v []float64) {
	h.u64(uint64(len(v)))
	for _, f := range v {
		h.f64(f)
	}
}

func (h hasher) matrix(m Matrix) {
	h.u64(uint64(m.Dim()))
	for _, row := range m.rows {
		h.u64(uint64(len(row)))
		for _, c := range row {
			h.f64(real(c))
			h.f64(imag(c))
		}
	}
}

func cloneInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return slices.Clone(v)
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return slices.Clone(v)
}

func cloneBytes(v []uint8) []uint8 {
	if v == nil {
		return []uint8{}
	}
	return slices.Clone(v)
}

func equalInts(a, b []int) bool { return slices.Equal(a, b) }
