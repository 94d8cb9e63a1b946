package regmap

import (
	"math/bits"

	"github.com/Manu343726/regmap/pkg/utils"
)

// A named integer value of an enum
type EnumEntry struct {
	Name  string
	Value uint64
	Docs  Docs
}

// A closed set of named values legal for one or more fields.
// Enums referenced by several fields are shared immutable values: fields hold
// a pointer into the register map's shared enum collection, never a copy
type Enum struct {
	Name string
	// True for enums declared at map level and referenced by name,
	// false for enums local to a single field
	IsShared bool
	Docs     Docs
	// Entry names are unique, entry values need not be
	Entries *utils.OrderedMap[*EnumEntry]
}

// Smallest bitwidth able to hold every entry value of the enum
func (e *Enum) MinBitwidth() uint {
	values := utils.Map(e.Entries.Values(), func(entry *EnumEntry) uint64 { return entry.Value })

	if len(values) == 0 {
		return 0
	}

	width := uint(bits.Len64(utils.Max(values)))

	if width == 0 {
		// A lone zero entry still occupies one bit
		width = 1
	}

	return width
}
