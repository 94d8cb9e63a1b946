package regmap

import (
	"fmt"
	"strings"

	"github.com/Manu343726/regmap/pkg/utils"
)

// The root of the model: one device, its register blocks and the enums shared
// across fields. Exclusively owns its blocks, which own their registers,
// which own their fields. Immutable once validated
type RegisterMap struct {
	DeviceName string
	Docs       Docs
	// Optional listing header fields
	Author string
	Notice string
	// Register block name to block
	Blocks *utils.OrderedMap[*RegisterBlock]
	// Shared enum name to enum
	Enums *utils.OrderedMap[*Enum]
}

// Builds the ascii layout diagram of a register by walking its bits from lsb
// to msb, grouping consecutive bits owned by the same field (or by the
// always-write mask) into one frame entry each. Scattered fields contribute
// one entry per consecutive bit range
func registerFrame(r *Register, leftpad int) (string, error) {
	// Fields spanning several ranges get their label disambiguated with the
	// range of each entry
	scattered := make(map[string]bool, r.Fields.Len())

	for _, field := range r.Fields.Values() {
		scattered[field.Name] = len(field.Bits.Ranges()) > 1
	}

	var frameFields []utils.AsciiFrameField

	for bit := uint(0); bit < r.Bitwidth; {
		fieldName, isField := r.FieldAt(bit)

		if !isField && !r.IsBitAlwaysWrite(bit) {
			bit++
			continue
		}

		rng := BitRange{Low: bit, High: bit}

		for bit++; bit < r.Bitwidth; bit++ {
			name, ok := r.FieldAt(bit)

			if isField && (!ok || name != fieldName) {
				break
			}

			if !isField && (ok || !r.IsBitAlwaysWrite(bit)) {
				break
			}

			rng.High = bit
		}

		width := int(rng.High - rng.Low + 1)
		label := fieldName

		if isField && scattered[fieldName] {
			label = fmt.Sprintf("%v[%v]", fieldName, rng)
		}

		if !isField {
			value, err := r.AlwaysWriteValue(MakeBits(utils.Iota(width, func(i int) uint { return rng.Low + uint(i) })...))

			if err != nil {
				return "", err
			}

			label = "always 0b" + utils.FormatUintBinary(value, width)
		}

		frameFields = append(frameFields, utils.AsciiFrameField{
			Name:  label,
			Begin: int(rng.Low),
			Width: width,
		})
	}

	return utils.AsciiFrame(frameFields, int(r.Bitwidth), "bits", utils.AsciiFrameUnitLayout_RightToLeft, leftpad)
}

func enumDocumentation(e *Enum, leftpad int) string {
	pad := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	for _, line := range e.Docs.AsTwoLine(pad + "// ") {
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	for _, entry := range e.Entries.Values() {
		builder.WriteString(fmt.Sprintf("%v- %v = 0x%X", pad, entry.Name, entry.Value))

		if entry.Docs.Brief != "" {
			builder.WriteString(" (" + entry.Docs.Brief + ")")
		}

		builder.WriteString("\n")
	}

	return builder.String()
}

// Dumps a human readable description of the whole register map as one big
// multiline string: header, shared enums, and per register layout diagrams
// with field details
func (m *RegisterMap) Documentation(leftpad int) (string, error) {
	pad := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%v=== %v register map ===\n", pad, m.DeviceName))

	if m.Author != "" {
		builder.WriteString(fmt.Sprintf("%vauthor: %v\n", pad, m.Author))
	}

	if m.Notice != "" {
		builder.WriteString(fmt.Sprintf("%vnotice: %v\n", pad, m.Notice))
	}

	for _, line := range m.Docs.AsMultiLine(pad) {
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	if m.Enums.Len() > 0 {
		builder.WriteString(fmt.Sprintf("\n%vShared enums:\n\n", pad))

		for _, enum := range m.Enums.Values() {
			builder.WriteString(fmt.Sprintf("%v%v:\n", pad, enum.Name))
			builder.WriteString(enumDocumentation(enum, leftpad+2))
			builder.WriteString("\n")
		}
	}

	for _, block := range m.Blocks.Values() {
		builder.WriteString(fmt.Sprintf("\n%v=== Block %v ===\n", pad, block.Name))

		for _, line := range block.Docs.AsTwoLine(pad) {
			builder.WriteString(line)
			builder.WriteString("\n")
		}

		for _, instance := range block.Instances.Entries() {
			builder.WriteString(fmt.Sprintf("%vinstance %v at %v\n", pad, instance.First, utils.FormatUintHex(instance.Second, 2)))
		}

		for _, register := range block.Registers.Values() {
			builder.WriteString(fmt.Sprintf("\n%v%v (offset %v, %v bits", pad, register.Name, utils.FormatUintHex(register.Offset, 2), register.Bitwidth))

			if register.ResetValue != nil {
				builder.WriteString(fmt.Sprintf(", reset 0b%v", utils.FormatUintBinary(*register.ResetValue, int(register.Bitwidth))))
			}

			builder.WriteString(")\n")

			for _, line := range register.Docs.AsTwoLine(pad) {
				builder.WriteString(line)
				builder.WriteString("\n")
			}

			frame, err := registerFrame(register, leftpad+2)

			if err != nil {
				return "", err
			}

			builder.WriteString(frame)

			for _, field := range register.Fields.Values() {
				builder.WriteString(fmt.Sprintf("%v  %v [%v] (%v)", pad, field.Name, field.Bits, field.AccessString()))

				if field.Docs.Brief != "" {
					builder.WriteString(": " + field.Docs.Brief)
				}

				builder.WriteString("\n")

				if field.Enum != nil {
					builder.WriteString(enumDocumentation(field.Enum, leftpad+4))
				}
			}
		}
	}

	return builder.String(), nil
}

// Like Documentation(), but with zero leftpad
func (m *RegisterMap) DocString() (string, error) {
	return m.Documentation(0)
}
