package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSanitize(t *testing.T) {
	cases := map[string]string{
		"CTRL":         "CTRL",
		"Sensor X":     "Sensor_X",
		"my-field":     "my_field",
		"a  b":         "a_b",
		"rate (fast)":  "rate_fast_",
		"  spaced  ":   "spaced",
		"already_fine": "already_fine",
	}

	for input, expected := range cases {
		assert.Equal(t, expected, CSanitize(input), "input: %q", input)
	}
}

func TestCSanitize_LeadingDigit(t *testing.T) {
	assert.Equal(t, "_3v3_rail", CSanitize("3v3 rail"))
}

func TestCSanitize_CaseFoldingIsDeterministic(t *testing.T) {
	sanitized := CSanitize("Sensor X")

	assert.Equal(t, "SENSOR_X", strings.ToUpper(sanitized))
	assert.Equal(t, "sensor_x", strings.ToLower(sanitized))
}

func TestCSanitize_SiblingsDoNotCollide(t *testing.T) {
	// Names differing in more than separators keep distinct identifiers
	assert.NotEqual(t, CSanitize("mode a"), CSanitize("mode b"))
}
