package regmap

import "strings"

// Represents how a register field can be accessed by the host
type AccessMode uint

const (
	AccessMode_Read AccessMode = iota
	AccessMode_Write
)

func (m AccessMode) String() string {
	switch m {
	case AccessMode_Read:
		return "Read"
	case AccessMode_Write:
		return "Write"
	}

	panic("unreachable")
}

// Returns the short form used in listings and documentation dumps
func (m AccessMode) Short() string {
	switch m {
	case AccessMode_Read:
		return "r"
	case AccessMode_Write:
		return "w"
	}

	panic("unreachable")
}

// Joins the short forms of a list of access modes with slashes ("r/w")
func AccessString(modes []AccessMode) string {
	shorts := make([]string, len(modes))

	for i, mode := range modes {
		shorts[i] = mode.Short()
	}

	return strings.Join(shorts, "/")
}
