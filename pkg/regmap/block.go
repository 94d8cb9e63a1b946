package regmap

import "github.com/Manu343726/regmap/pkg/utils"

// A named group of registers sharing one layout, physically repeated once per
// instance. Each instance maps a symbolic name to the base offset its
// registers are found at
type RegisterBlock struct {
	Name string
	// Instance name to base offset
	Instances *utils.OrderedMap[uint64]
	Docs      Docs
	Registers *utils.OrderedMap[*Register]
}
