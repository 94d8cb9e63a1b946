// Package generator defines the interface output backends implement and the
// registry the CLI looks them up in. A backend is a pure function from a
// validated register map to generated source text: it performs no I/O and
// never mutates the model, so the same map always produces byte identical
// output.
package generator

import (
	"errors"
	"strings"

	"github.com/Manu343726/regmap/pkg/regmap"
	"github.com/Manu343726/regmap/pkg/utils"
)

var ErrUnknownGenerator = errors.New("unknown generator")

// Projects a register map into target source text
type Generator interface {
	// One line summary of what the backend emits
	Description() string
	// Returns the generated text. The model is assumed validated and is
	// consumed read-only; args carries backend specific options
	Generate(m *regmap.RegisterMap, args []string) (string, error)
}

// Backends in registration order, so `tools generators` listings are stable
var registry = utils.MakeOrderedMap[Generator]()

// Registers a backend under a name. Called from the backend's init function
func Register(name string, g Generator) {
	registry.Set(name, g)
}

// Returns the backend registered under a name
func Lookup(name string) (Generator, error) {
	g, ok := registry.Get(name)

	if !ok {
		return nil, utils.MakeError(ErrUnknownGenerator, "'%v' (known generators: %v)", name, strings.Join(registry.Keys(), ", "))
	}

	return g, nil
}

// Returns the names of all registered backends in registration order
func Names() []string {
	return registry.Keys()
}

// Returns all registered backends in registration order
func All() []utils.Pair[string, Generator] {
	return registry.Entries()
}
