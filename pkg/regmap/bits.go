// Package regmap implements the in-memory model of a hardware register map:
// registers, bit fields, always-write masks and named value enums. The model
// is built once by the listing front end, validated eagerly, and consumed
// read-only by the output generators.
package regmap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Manu343726/regmap/pkg/utils"
)

// Biggest register bitwidth the model can represent
var MaxBitwidth = uint(utils.SizeofBits[uint64]())

var (
	ErrInvalidRange  = errors.New("bit position out of range")
	ErrEmptySet      = errors.New("empty bit set")
	ErrBitNotPresent = errors.New("bit not present in set")
)

// A maximal run of consecutive bit positions, both ends inclusive
type BitRange struct {
	Low  uint
	High uint
}

func (r BitRange) String() string {
	if r.Low == r.High {
		return fmt.Sprint(r.Low)
	}

	return fmt.Sprintf("%v-%v", r.Low, r.High)
}

// An ordered set of unique bit positions within a fixed width register.
// The zero value is the empty set
type Bits struct {
	positions []uint
}

// Builds a bit set from individual positions. Duplicates collapse into one
// and the resulting set is kept sorted in ascending order
func MakeBits(positions ...uint) Bits {
	sorted := make([]uint, len(positions))
	copy(sorted, positions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	unique := sorted[:0]

	for _, p := range sorted {
		if len(unique) == 0 || unique[len(unique)-1] != p {
			unique = append(unique, p)
		}
	}

	return Bits{positions: unique}
}

// Builds the bit set of all positions set in a mask
func BitsFromMask(mask uint64) Bits {
	var positions []uint

	for pos := uint(0); pos < MaxBitwidth; pos++ {
		if mask&(uint64(1)<<pos) != 0 {
			positions = append(positions, pos)
		}
	}

	return Bits{positions: positions}
}

// Builds the bit set covering [0, width)
func BitsFromWidth(width uint) Bits {
	return BitsFromMask(utils.AllOnes[uint64](int(width)))
}

func (b Bits) Len() int {
	return len(b.positions)
}

func (b Bits) Empty() bool {
	return len(b.positions) == 0
}

// Returns all positions in ascending order
func (b Bits) Positions() []uint {
	positions := make([]uint, len(b.positions))
	copy(positions, b.positions)
	return positions
}

func (b Bits) Contains(bit uint) bool {
	for _, p := range b.positions {
		if p == bit {
			return true
		}
	}

	return false
}

// Returns the OR reduction of 1<<p over all positions of the set
func (b Bits) Mask() uint64 {
	var mask uint64

	for _, p := range b.positions {
		mask |= uint64(1) << p
	}

	return mask
}

// Returns the least significant position of the set
func (b Bits) LsbPosition() (uint, error) {
	if b.Empty() {
		return 0, utils.MakeError(ErrEmptySet, "bit set has no least significant position")
	}

	return utils.Min(b.positions), nil
}

// Groups the positions into maximal runs of consecutive bits, in ascending order
func (b Bits) Ranges() []BitRange {
	var ranges []BitRange

	for _, p := range b.positions {
		if len(ranges) > 0 && ranges[len(ranges)-1].High+1 == p {
			ranges[len(ranges)-1].High = p
		} else {
			ranges = append(ranges, BitRange{Low: p, High: p})
		}
	}

	return ranges
}

// Returns a copy of the set with one bit removed
func (b Bits) Without(bit uint) (Bits, error) {
	for i, p := range b.positions {
		if p == bit {
			positions := make([]uint, 0, len(b.positions)-1)
			positions = append(positions, b.positions[:i]...)
			positions = append(positions, b.positions[i+1:]...)
			return Bits{positions: positions}, nil
		}
	}

	return Bits{}, utils.MakeError(ErrBitNotPresent, "bit %v not in set [%v]", bit, b)
}

func (b Bits) String() string {
	return utils.FormatSlice(b.Ranges(), ", ")
}
