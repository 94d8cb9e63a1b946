package cenums

import (
	"regexp"
	"strings"
	"testing"

	"github.com/Manu343726/regmap/pkg/regmap"
	"github.com/Manu343726/regmap/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEnum(name string, isShared bool, entries ...regmap.EnumEntry) *regmap.Enum {
	enum := &regmap.Enum{
		Name:     name,
		IsShared: isShared,
		Entries:  utils.MakeOrderedMap[*regmap.EnumEntry](),
	}

	for i := range entries {
		enum.Entries.Set(entries[i].Name, &entries[i])
	}

	return enum
}

func makeMap(deviceName string, enums []*regmap.Enum, registers ...*regmap.Register) *regmap.RegisterMap {
	m := &regmap.RegisterMap{
		DeviceName: deviceName,
		Blocks:     utils.MakeOrderedMap[*regmap.RegisterBlock](),
		Enums:      utils.MakeOrderedMap[*regmap.Enum](),
	}

	for _, enum := range enums {
		m.Enums.Set(enum.Name, enum)
	}

	for _, register := range registers {
		block := &regmap.RegisterBlock{
			Name:      register.Name,
			Instances: utils.MakeOrderedMap[uint64](),
			Registers: utils.MakeOrderedMap[*regmap.Register](),
		}
		block.Instances.Set(register.Name, 0)
		block.Registers.Set(register.Name, register)
		m.Blocks.Set(block.Name, block)
	}

	return m
}

func makeRegister(name string, bitwidth uint, fields ...*regmap.Field) *regmap.Register {
	register := &regmap.Register{
		Name:     name,
		Fields:   utils.MakeOrderedMap[*regmap.Field](),
		Bitwidth: bitwidth,
	}

	for _, field := range fields {
		register.Fields.Set(field.Name, field)
	}

	return register
}

func makeField(name string, bits regmap.Bits, enum *regmap.Enum) *regmap.Field {
	return &regmap.Field{
		Name:   name,
		Bits:   bits,
		Access: []regmap.AccessMode{regmap.AccessMode_Read, regmap.AccessMode_Write},
		Enum:   enum,
	}
}

// Device "Sensor X" with a shared Mode enum bound to a CTRL.mode field: the
// enum is emitted once globally and never repeated under the register
func TestGenerate_SharedEnum(t *testing.T) {
	mode := makeEnum("Mode", true,
		regmap.EnumEntry{Name: "Off", Value: 0},
		regmap.EnumEntry{Name: "On", Value: 1})

	m := makeMap("Sensor X", []*regmap.Enum{mode},
		makeRegister("CTRL", 8, makeField("mode", regmap.MakeBits(0), mode)))

	output, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	assert.Contains(t, output, "#ifndef SENSOR_X_REG_ENUMS_H_")
	assert.Contains(t, output, "#define SENSOR_X_REG_ENUMS_H_")
	assert.Contains(t, output, "#endif /* SENSOR_X_REG_ENUMS_H_ */")

	assert.Contains(t, output, "typedef enum {\n  SENSOR_X_MODE_OFF = 0x0U,\n  SENSOR_X_MODE_ON = 0x1U,\n} sensor_x_mode_t;")

	assert.NotContains(t, output, "CTRL Enums")
}

// A register with no enum-bearing fields produces no section header
func TestGenerate_RegisterWithoutEnums(t *testing.T) {
	m := makeMap("Chip", nil,
		makeRegister("STATUS", 8, makeField("busy", regmap.MakeBits(0), nil)))

	output, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	assert.NotContains(t, output, "STATUS Enums")
	assert.Contains(t, output, "// ==== Global Enums ")
}

func TestGenerate_FieldLocalEnum(t *testing.T) {
	rate := makeEnum("rate", false,
		regmap.EnumEntry{Name: "Slow", Value: 0},
		regmap.EnumEntry{Name: "Fast", Value: 3})

	m := makeMap("Chip", nil,
		makeRegister("CFG", 8,
			makeField("rate", regmap.MakeBits(0, 1), rate),
			makeField("spare", regmap.MakeBits(2), nil)))

	output, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	assert.Contains(t, output, "// ==== CFG Enums ")
	assert.Contains(t, output, "  CHIP_RATE_SLOW = 0x0U,")
	assert.Contains(t, output, "  CHIP_RATE_FAST = 0x3U,")
	assert.Contains(t, output, "} chip_rate_t;")
}

func TestGenerate_SectionHeadersPaddedTo80Columns(t *testing.T) {
	rate := makeEnum("rate", false, regmap.EnumEntry{Name: "Slow", Value: 0})

	m := makeMap("Chip", nil,
		makeRegister("CFG", 8, makeField("rate", regmap.MakeBits(0), rate)))

	output, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "// ====") {
			assert.Len(t, line, 80)
			assert.True(t, strings.HasSuffix(line, "="))
		}
	}
}

func TestGenerate_ValuesInUppercaseHex(t *testing.T) {
	levels := makeEnum("Levels", true, regmap.EnumEntry{Name: "High", Value: 0xAB})

	m := makeMap("Chip", []*regmap.Enum{levels})

	output, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	assert.Contains(t, output, "  CHIP_LEVELS_HIGH = 0xABU,")
}

func TestGenerate_Deterministic(t *testing.T) {
	mode := makeEnum("Mode", true,
		regmap.EnumEntry{Name: "Off", Value: 0},
		regmap.EnumEntry{Name: "On", Value: 1})
	rate := makeEnum("rate", false,
		regmap.EnumEntry{Name: "Slow", Value: 0},
		regmap.EnumEntry{Name: "Fast", Value: 1})

	m := makeMap("Sensor X", []*regmap.Enum{mode},
		makeRegister("CTRL", 8,
			makeField("mode", regmap.MakeBits(0), mode),
			makeField("rate", regmap.MakeBits(1, 2), rate)),
		makeRegister("STATUS", 8, makeField("busy", regmap.MakeBits(0), nil)))

	first, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	second, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_SymbolsAreUnique(t *testing.T) {
	mode := makeEnum("Mode", true,
		regmap.EnumEntry{Name: "Off", Value: 0},
		regmap.EnumEntry{Name: "On", Value: 1})
	rate := makeEnum("rate", false,
		regmap.EnumEntry{Name: "Slow", Value: 0},
		regmap.EnumEntry{Name: "Fast", Value: 1})

	m := makeMap("Sensor X", []*regmap.Enum{mode},
		makeRegister("CTRL", 8,
			makeField("mode", regmap.MakeBits(0), mode),
			makeField("rate", regmap.MakeBits(1, 2), rate)))

	output, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	symbolPattern := regexp.MustCompile(`^  ([A-Z0-9_]+) = 0x[0-9A-F]+U,$`)
	seen := map[string]bool{}

	for _, line := range strings.Split(output, "\n") {
		if match := symbolPattern.FindStringSubmatch(line); match != nil {
			assert.False(t, seen[match[1]], "symbol %v emitted twice", match[1])
			seen[match[1]] = true
		}
	}

	assert.NotEmpty(t, seen)
}

func TestGenerate_DeclarationOrderPreserved(t *testing.T) {
	first := makeEnum("ZFirst", true, regmap.EnumEntry{Name: "A", Value: 0})
	second := makeEnum("ASecond", true, regmap.EnumEntry{Name: "B", Value: 0})

	m := makeMap("Chip", []*regmap.Enum{first, second})

	output, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	// Declaration order wins over alphabetical order
	assert.Less(t, strings.Index(output, "chip_zfirst_t"), strings.Index(output, "chip_asecond_t"))
}

func TestGenerate_AuthorAndNoticeInHeader(t *testing.T) {
	m := makeMap("Chip", nil)
	m.Author = "Jane Doe"
	m.Notice = "internal use only"

	output, err := Generator{}.Generate(m, nil)
	require.NoError(t, err)

	assert.Contains(t, output, "* Author: Jane Doe")
	assert.Contains(t, output, "* internal use only")
}
