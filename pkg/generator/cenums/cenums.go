// Package cenums implements the C enumeration header backend: one C enum
// type per shared enum and per enum-bearing register field, wrapped in an
// include guard.
package cenums

import (
	"fmt"
	"strings"

	"github.com/Manu343726/regmap/pkg/generator"
	"github.com/Manu343726/regmap/pkg/regmap"
	"github.com/Manu343726/regmap/pkg/utils"
)

type Generator struct{}

func init() {
	generator.Register("c-enums", Generator{})
}

func (Generator) Description() string {
	return "C header declaring one enumeration type per shared enum and per enum-bearing register field"
}

const sectionWidth = 80

// Builds a "// ==== title ====..." section header padded to the full section
// width
func sectionHeader(title string) string {
	line := fmt.Sprintf("// ==== %v ", title)

	if len(line) < sectionWidth {
		line += strings.Repeat("=", sectionWidth-len(line))
	}

	return line
}

// Emits one "typedef enum { ... } <dev>_<key>_t;" block. Symbols are keyed by
// the enum name for shared enums and by the field name for field-local enums
func enumTypedef(out []string, devMacro string, devC string, key string, entries []*regmap.EnumEntry) []string {
	keyMacro := strings.ToUpper(utils.CSanitize(key))
	keyC := strings.ToLower(utils.CSanitize(key))

	out = append(out, "typedef enum {")

	for _, entry := range entries {
		entryMacro := strings.ToUpper(utils.CSanitize(entry.Name))
		out = append(out, fmt.Sprintf("  %v_%v_%v = 0x%XU,", devMacro, keyMacro, entryMacro, entry.Value))
	}

	out = append(out, fmt.Sprintf("} %v_%v_t;", devC, keyC))
	out = append(out, "")

	return out
}

// The name a register section header shows. Blocks holding a single register
// of the same name are sugar for a standalone register and keep the plain
// name
func sectionName(block *regmap.RegisterBlock, register *regmap.Register) string {
	if block.Registers.Len() == 1 && block.Name == register.Name {
		return register.Name
	}

	return fmt.Sprintf("%v %v", block.Name, register.Name)
}

// Walks the model in declaration order and emits the enum header. The model
// is assumed validated; the walk performs no I/O and no mutation, so output
// is byte identical across runs
func (Generator) Generate(m *regmap.RegisterMap, args []string) (string, error) {
	devMacro := strings.ToUpper(utils.CSanitize(m.DeviceName))
	devC := strings.ToLower(utils.CSanitize(m.DeviceName))

	var out []string

	out = append(out, "/*")
	out = append(out, fmt.Sprintf("* %v Register Enums.", m.DeviceName))
	out = append(out, "* Note: do not edit: Generated using regmap.")

	if m.Author != "" {
		out = append(out, fmt.Sprintf("* Author: %v", m.Author))
	}

	if m.Notice != "" {
		for _, line := range strings.Split(m.Notice, "\n") {
			out = append(out, "* "+line)
		}
	}

	out = append(out, "*/")
	out = append(out, "")
	out = append(out, fmt.Sprintf("#ifndef %v_REG_ENUMS_H_", devMacro))
	out = append(out, fmt.Sprintf("#define %v_REG_ENUMS_H_", devMacro))
	out = append(out, "")

	out = append(out, "")
	out = append(out, sectionHeader("Global Enums"))
	out = append(out, "")

	for _, enum := range m.Enums.Values() {
		out = enumTypedef(out, devMacro, devC, enum.Name, enum.Entries.Values())
	}

	for _, block := range m.Blocks.Values() {
		for _, register := range block.Registers.Values() {
			enumFields := 0

			for _, field := range register.Fields.Values() {
				if field.Enum != nil && !field.Enum.IsShared {
					enumFields++
				}
			}

			if enumFields == 0 {
				continue
			}

			out = append(out, "")
			out = append(out, sectionHeader(fmt.Sprintf("%v Enums", sectionName(block, register))))
			out = append(out, "")

			for _, field := range register.Fields.Values() {
				if field.Enum == nil || field.Enum.IsShared {
					continue
				}

				out = enumTypedef(out, devMacro, devC, field.Name, field.Enum.Entries.Values())
			}
		}
	}

	out = append(out, fmt.Sprintf("#endif /* %v_REG_ENUMS_H_ */", devMacro))

	return strings.Join(out, "\n"), nil
}
