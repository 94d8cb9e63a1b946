package regmap

import (
	"errors"
	"math/bits"

	"github.com/Manu343726/regmap/pkg/utils"
)

var (
	ErrOverlappingBits = errors.New("overlapping bits")
	ErrNoAccessModes   = errors.New("field with no access modes")
)

func validateField(registerName string, field *Field, bitwidth uint) error {
	if field.Bits.Empty() {
		return utils.MakeError(ErrEmptySet, "register '%v', field '%v' covers no bits", registerName, field.Name)
	}

	if len(field.Access) == 0 {
		return utils.MakeError(ErrNoAccessModes, "register '%v', field '%v'", registerName, field.Name)
	}

	for _, bit := range field.Bits.Positions() {
		if bit >= bitwidth {
			return utils.MakeError(ErrInvalidRange, "register '%v', field '%v': bit %v outside register bitwidth %v", registerName, field.Name, bit, bitwidth)
		}
	}

	if field.Enum != nil {
		fieldWidth := uint(field.Bits.Len())

		for _, entry := range field.Enum.Entries.Values() {
			if uint(bits.Len64(entry.Value)) > fieldWidth {
				return utils.MakeError(ErrInvalidRange, "register '%v', field '%v': enum '%v' entry '%v' value 0x%X does not fit into %v bits",
					registerName, field.Name, field.Enum.Name, entry.Name, entry.Value, fieldWidth)
			}
		}
	}

	return nil
}

func validateRegister(register *Register) error {
	if register.Bitwidth == 0 || register.Bitwidth > MaxBitwidth {
		return utils.MakeError(ErrInvalidRange, "register '%v': bitwidth %v not in [1, %v]", register.Name, register.Bitwidth, MaxBitwidth)
	}

	// Tracks which field (or the always-write mask) owns each bit so overlap
	// reports can name both sides
	owners := make([]string, register.Bitwidth)

	for _, field := range register.Fields.Values() {
		if err := validateField(register.Name, field, register.Bitwidth); err != nil {
			return err
		}

		for _, bit := range field.Bits.Positions() {
			if owners[bit] != "" {
				return utils.MakeError(ErrOverlappingBits, "register '%v': fields '%v' and '%v' both cover bit %v", register.Name, owners[bit], field.Name, bit)
			}

			owners[bit] = field.Name
		}
	}

	if register.AlwaysWrite != nil {
		for _, bit := range register.AlwaysWrite.Bits.Positions() {
			if bit >= register.Bitwidth {
				return utils.MakeError(ErrInvalidRange, "register '%v': always-write bit %v outside register bitwidth %v", register.Name, bit, register.Bitwidth)
			}

			if owners[bit] != "" {
				return utils.MakeError(ErrOverlappingBits, "register '%v': field '%v' and the always-write mask both cover bit %v", register.Name, owners[bit], bit)
			}

			owners[bit] = "(always write)"
		}
	}

	if register.ResetValue != nil && uint(bits.Len64(*register.ResetValue)) > register.Bitwidth {
		return utils.MakeError(ErrInvalidRange, "register '%v': reset value 0x%X does not fit into %v bits", register.Name, *register.ResetValue, register.Bitwidth)
	}

	return nil
}

// Checks every structural invariant of a register map: register bitwidths,
// field bits within range, pairwise disjoint fields and always-write masks,
// enum values fitting their fields and reset values fitting their registers.
// Meant to run once at construction time so that the generation pass can
// assume a consistent model and stay total
func Validate(m *RegisterMap) error {
	for _, block := range m.Blocks.Values() {
		for _, register := range block.Registers.Values() {
			if err := validateRegister(register); err != nil {
				return utils.MakeError(err, "block '%v'", block.Name)
			}
		}
	}

	return nil
}
