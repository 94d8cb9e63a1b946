package regmap

import (
	"testing"

	"github.com/Manu343726/regmap/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFrame_LabelsEveryOwnedBit(t *testing.T) {
	register := makeTestRegister(8,
		makeTestField("mode", MakeBits(0, 1), nil),
		makeTestField("speed", MakeBits(4, 5), nil))
	register.AlwaysWrite = &AlwaysWrite{Bits: MakeBits(6, 7), Value: 0b10 << 6}

	frame, err := registerFrame(register, 0)
	require.NoError(t, err)

	assert.Contains(t, frame, "mode")
	assert.Contains(t, frame, "speed")
	assert.Contains(t, frame, "always 0b10")
	assert.Contains(t, frame, "(unused)")
}

func TestRegisterFrame_ScatteredFieldSplitsPerRange(t *testing.T) {
	register := makeTestRegister(8, makeTestField("split", MakeBits(0, 1, 4, 5, 6), nil))

	frame, err := registerFrame(register, 0)
	require.NoError(t, err)

	assert.Contains(t, frame, "split[0-1]")
	assert.Contains(t, frame, "split[4-6]")
}

func TestRegisterFrame_AdjacentFieldAndAlwaysWrite(t *testing.T) {
	// A field run touching the always-write run must still produce two
	// separately labeled entries
	register := makeTestRegister(8, makeTestField("f", MakeBits(0, 1, 2, 3), nil))
	register.AlwaysWrite = &AlwaysWrite{Bits: MakeBits(4, 5, 6, 7), Value: 0b1011 << 4}

	frame, err := registerFrame(register, 0)
	require.NoError(t, err)

	assert.Contains(t, frame, "f")
	assert.Contains(t, frame, "always 0b1011")
	assert.NotContains(t, frame, "(unused)")
}

func TestRegisterMap_Documentation(t *testing.T) {
	enum := makeTestEnum("Mode", true,
		&EnumEntry{Name: "Off", Value: 0, Docs: Docs{Brief: "powered down"}},
		&EnumEntry{Name: "On", Value: 1})

	register := makeTestRegister(8, makeTestField("mode", MakeBits(0, 1), enum))
	register.Offset = 0x10
	reset := uint64(0x01)
	register.ResetValue = &reset

	m := &RegisterMap{
		DeviceName: "Dummy Chip",
		Author:     "Jane Doe",
		Blocks:     utils.MakeOrderedMap[*RegisterBlock](),
		Enums:      utils.MakeOrderedMap[*Enum](),
	}
	m.Enums.Set(enum.Name, enum)

	block := &RegisterBlock{
		Name:      register.Name,
		Instances: utils.MakeOrderedMap[uint64](),
		Registers: utils.MakeOrderedMap[*Register](),
	}
	block.Instances.Set(register.Name, 0)
	block.Registers.Set(register.Name, register)
	m.Blocks.Set(block.Name, block)

	docs, err := m.DocString()
	require.NoError(t, err)

	assert.Contains(t, docs, "=== Dummy Chip register map ===")
	assert.Contains(t, docs, "author: Jane Doe")
	assert.Contains(t, docs, "Shared enums:")
	assert.Contains(t, docs, "- Off = 0x0 (powered down)")
	assert.Contains(t, docs, "CTRL (offset 0x10, 8 bits, reset 0b00000001)")
	assert.Contains(t, docs, "mode [0-1] (r/w)")
}
