package regmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBits_SortsAndDeduplicates(t *testing.T) {
	bits := MakeBits(5, 1, 3, 1)

	assert.Equal(t, []uint{1, 3, 5}, bits.Positions())
	assert.Equal(t, 3, bits.Len())
}

func TestBits_Mask(t *testing.T) {
	assert.Equal(t, uint64(0b0), MakeBits().Mask())
	assert.Equal(t, uint64(0b1), MakeBits(0).Mask())
	assert.Equal(t, uint64(0b10), MakeBits(1).Mask())
	assert.Equal(t, uint64(0b111000), MakeBits(3, 4, 5).Mask())
	assert.Equal(t, uint64(0b1000101), MakeBits(0, 2, 6).Mask())
	assert.Equal(t, uint64(1)<<63, MakeBits(63).Mask())
}

func TestBitsFromMask_RoundTrips(t *testing.T) {
	for _, mask := range []uint64{0, 0b1, 0b10, 0b1101110, uint64(1) << 63, ^uint64(0)} {
		assert.Equal(t, mask, BitsFromMask(mask).Mask())
	}
}

func TestBitsFromWidth(t *testing.T) {
	assert.True(t, BitsFromWidth(0).Empty())
	assert.Equal(t, []uint{0, 1, 2}, BitsFromWidth(3).Positions())
	assert.Equal(t, uint64(0b1111), BitsFromWidth(4).Mask())
}

func TestBits_LsbPosition(t *testing.T) {
	lsb, err := MakeBits(4, 7, 2).LsbPosition()
	require.NoError(t, err)
	assert.Equal(t, uint(2), lsb)

	lsb, err = MakeBits(0).LsbPosition()
	require.NoError(t, err)
	assert.Equal(t, uint(0), lsb)
}

func TestBits_LsbPosition_EmptySet(t *testing.T) {
	_, err := MakeBits().LsbPosition()
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestBits_Ranges(t *testing.T) {
	assert.Empty(t, MakeBits().Ranges())
	assert.Equal(t, []BitRange{{Low: 0, High: 2}}, MakeBits(0, 1, 2).Ranges())
	assert.Equal(t, []BitRange{{Low: 1, High: 3}}, MakeBits(1, 2, 3).Ranges())
	assert.Equal(t, []BitRange{{Low: 1, High: 3}, {Low: 5, High: 6}}, MakeBits(1, 2, 3, 5, 6).Ranges())
	assert.Equal(t, []BitRange{{Low: 0, High: 0}, {Low: 2, High: 2}, {Low: 4, High: 4}}, MakeBits(0, 2, 4).Ranges())
}

func TestBits_Without(t *testing.T) {
	bits, err := MakeBits(1, 2, 3).Without(2)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, bits.Positions())

	_, err = MakeBits(1, 2, 3).Without(7)
	assert.ErrorIs(t, err, ErrBitNotPresent)
}

func TestBits_Contains(t *testing.T) {
	bits := MakeBits(1, 4)

	assert.True(t, bits.Contains(1))
	assert.True(t, bits.Contains(4))
	assert.False(t, bits.Contains(0))
	assert.False(t, bits.Contains(2))
}

func TestBits_String(t *testing.T) {
	assert.Equal(t, "3", MakeBits(3).String())
	assert.Equal(t, "1-3, 5-6", MakeBits(1, 2, 3, 5, 6).String())
}

func TestBitRange_String(t *testing.T) {
	assert.Equal(t, "4", BitRange{Low: 4, High: 4}.String())
	assert.Equal(t, "3-5", BitRange{Low: 3, High: 5}.String())
}
