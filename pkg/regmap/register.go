package regmap

import (
	"errors"

	"github.com/Manu343726/regmap/pkg/utils"
)

var (
	ErrNoAlwaysWrite  = errors.New("register has no always-write mask")
	ErrNotAlwaysWrite = errors.New("bits not part of the always-write mask")
)

// A fixed bit pattern that must be written to part of a register regardless
// of field semantics. Bits of Value outside the mask of Bits are ignored
type AlwaysWrite struct {
	Bits  Bits
	Value uint64
}

// A named, fixed bitwidth addressable unit composed of non overlapping fields
type Register struct {
	Name     string
	Fields   *utils.OrderedMap[*Field]
	Bitwidth uint
	// Byte offset relative to the enclosing block's instance base
	Offset      uint64
	AlwaysWrite *AlwaysWrite
	// Nil when the reset state is unknown
	ResetValue *uint64
	Docs       Docs
}

// Returns the bits of [0, bitwidth) covered by no field, minus the
// always-write bits when includeAlwaysWrite is set. The removal of each
// covered bit fails with ErrBitNotPresent if the model is inconsistent
// (a field bit out of range or covered twice), which eager validation rules
// out
func (r *Register) UnusedBits(includeAlwaysWrite bool) (Bits, error) {
	unused := BitsFromWidth(r.Bitwidth)

	for _, field := range r.Fields.Values() {
		for _, bit := range field.Bits.Positions() {
			var err error
			unused, err = unused.Without(bit)

			if err != nil {
				return Bits{}, utils.MakeError(err, "register '%v', field '%v'", r.Name, field.Name)
			}
		}
	}

	if includeAlwaysWrite && r.AlwaysWrite != nil {
		for _, bit := range r.AlwaysWrite.Bits.Positions() {
			var err error
			unused, err = unused.Without(bit)

			if err != nil {
				return Bits{}, utils.MakeError(err, "register '%v', always-write mask", r.Name)
			}
		}
	}

	return unused, nil
}

// Returns the name of the field containing the given bit. Fields are
// guaranteed disjoint, so the first match (in declared order) is the only one
func (r *Register) FieldAt(bit uint) (string, bool) {
	for _, field := range r.Fields.Values() {
		if field.Bits.Contains(bit) {
			return field.Name, true
		}
	}

	return "", false
}

func (r *Register) IsBitAlwaysWrite(bit uint) bool {
	return r.AlwaysWrite != nil && r.AlwaysWrite.Bits.Contains(bit)
}

// Extracts the slice of the always-write literal covered by the given bits,
// shifted down to start at bit zero. The given bits must be a subset of the
// register's always-write mask
func (r *Register) AlwaysWriteValue(bits Bits) (uint64, error) {
	if r.AlwaysWrite == nil {
		return 0, utils.MakeError(ErrNoAlwaysWrite, "register '%v'", r.Name)
	}

	for _, bit := range bits.Positions() {
		if !r.AlwaysWrite.Bits.Contains(bit) {
			return 0, utils.MakeError(ErrNotAlwaysWrite, "register '%v': bit %v outside mask [%v]", r.Name, bit, r.AlwaysWrite.Bits)
		}
	}

	lsb, err := bits.LsbPosition()

	if err != nil {
		return 0, utils.MakeError(err, "register '%v'", r.Name)
	}

	return (r.AlwaysWrite.Value & bits.Mask()) >> lsb, nil
}
