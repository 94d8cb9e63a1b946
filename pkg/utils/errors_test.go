package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTestSentinel = errors.New("something went wrong")

func TestMakeError_WrapsSentinel(t *testing.T) {
	err := MakeError(errTestSentinel, "register '%v', bit %v", "CTRL", 7)

	assert.ErrorIs(t, err, errTestSentinel)
	assert.Equal(t, "something went wrong: register 'CTRL', bit 7", err.Error())
}

func TestMakeError_NoArgs(t *testing.T) {
	err := MakeError(errTestSentinel, "no details")

	assert.ErrorIs(t, err, errTestSentinel)
	assert.Equal(t, "something went wrong: no details", err.Error())
}

func TestMakeError_NestedWrapping(t *testing.T) {
	inner := MakeError(errTestSentinel, "field 'mode'")
	outer := MakeError(inner, "register '%v'", "CTRL")

	assert.ErrorIs(t, outer, errTestSentinel)
	assert.ErrorIs(t, outer, inner)
	assert.Equal(t, "something went wrong: field 'mode': register 'CTRL'", outer.Error())
}
