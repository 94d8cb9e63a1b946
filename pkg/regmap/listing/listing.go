// Package listing parses the on-disk YAML description of a register map into
// the validated in-memory model. Declaration order in the document is
// preserved into every collection of the model, since generation order is
// part of the output contract; the package therefore walks yaml nodes
// directly instead of decoding into Go maps.
package listing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Manu343726/regmap/pkg/regmap"
	"github.com/Manu343726/regmap/pkg/utils"
	"gopkg.in/yaml.v3"
)

var (
	ErrMalformedListing = errors.New("malformed register map listing")
	ErrUnknownEnum      = errors.New("unknown shared enum")
)

// Optional map level defaults applied where a register or field omits the
// value
type defaults struct {
	LayoutBitwidth uint
	FieldAccess    []regmap.AccessMode
}

type parser struct {
	defaults defaults
	enums    *utils.OrderedMap[*regmap.Enum]
}

// Returns the (key, value) node pairs of a yaml mapping in document order
func mappingEntries(node *yaml.Node) ([]utils.Pair[string, *yaml.Node], error) {
	if node.Kind != yaml.MappingNode {
		return nil, utils.MakeError(ErrMalformedListing, "expected a mapping at line %v", node.Line)
	}

	entries := make([]utils.Pair[string, *yaml.Node], 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		entries = append(entries, utils.MakePair(node.Content[i].Value, node.Content[i+1]))
	}

	return entries, nil
}

func scalarString(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", utils.MakeError(ErrMalformedListing, "expected a scalar at line %v", node.Line)
	}

	return node.Value, nil
}

// Parses a scalar integer, accepting decimal, 0x and 0b forms
func scalarUint(node *yaml.Node) (uint64, error) {
	text, err := scalarString(node)

	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseUint(text, 0, 64)

	if err != nil {
		return 0, utils.MakeError(ErrMalformedListing, "'%v' at line %v is not an unsigned integer", text, node.Line)
	}

	return value, nil
}

// Parses a bits list. Each item is either a single position (3) or an
// inclusive range ("3-5"); duplicate positions are rejected
func parseBits(node *yaml.Node) (regmap.Bits, error) {
	if node.Kind != yaml.SequenceNode {
		return regmap.Bits{}, utils.MakeError(ErrMalformedListing, "expected a bits list at line %v", node.Line)
	}

	var positions []uint

	addPosition := func(pos uint64, line int) error {
		if pos >= uint64(regmap.MaxBitwidth) {
			return utils.MakeError(regmap.ErrInvalidRange, "bit %v at line %v exceeds the maximum supported bitwidth %v", pos, line, regmap.MaxBitwidth)
		}

		for _, p := range positions {
			if p == uint(pos) {
				return utils.MakeError(regmap.ErrInvalidRange, "bit %v at line %v given twice", pos, line)
			}
		}

		positions = append(positions, uint(pos))
		return nil
	}

	for _, item := range node.Content {
		text, err := scalarString(item)

		if err != nil {
			return regmap.Bits{}, err
		}

		if low, high, isRange := strings.Cut(text, "-"); isRange {
			lowPos, lowErr := strconv.ParseUint(low, 0, 64)
			highPos, highErr := strconv.ParseUint(high, 0, 64)

			if lowErr != nil || highErr != nil || lowPos > highPos {
				return regmap.Bits{}, utils.MakeError(regmap.ErrInvalidRange, "'%v' at line %v is not a valid bit range", text, item.Line)
			}

			for pos := lowPos; pos <= highPos; pos++ {
				if err := addPosition(pos, item.Line); err != nil {
					return regmap.Bits{}, err
				}
			}
		} else {
			pos, err := strconv.ParseUint(text, 0, 64)

			if err != nil {
				return regmap.Bits{}, utils.MakeError(regmap.ErrInvalidRange, "'%v' at line %v is not a valid bit position", text, item.Line)
			}

			if err := addPosition(pos, item.Line); err != nil {
				return regmap.Bits{}, err
			}
		}
	}

	return regmap.MakeBits(positions...), nil
}

func parseAccess(node *yaml.Node) ([]regmap.AccessMode, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, utils.MakeError(ErrMalformedListing, "expected an access mode list at line %v", node.Line)
	}

	var modes []regmap.AccessMode

	for _, item := range node.Content {
		text, err := scalarString(item)

		if err != nil {
			return nil, err
		}

		switch strings.ToLower(text) {
		case "r", "read":
			modes = append(modes, regmap.AccessMode_Read)
		case "w", "write":
			modes = append(modes, regmap.AccessMode_Write)
		default:
			return nil, utils.MakeError(ErrMalformedListing, "'%v' at line %v is not an access mode (expected r or w)", text, item.Line)
		}
	}

	return modes, nil
}

// Parses "brief" and "doc" keys of an entity mapping, ignoring other keys
func parseDocs(entries []utils.Pair[string, *yaml.Node]) (regmap.Docs, error) {
	var docs regmap.Docs

	for _, entry := range entries {
		switch entry.First {
		case "brief":
			brief, err := scalarString(entry.Second)

			if err != nil {
				return regmap.Docs{}, err
			}

			docs.Brief = brief
		case "doc":
			doc, err := scalarString(entry.Second)

			if err != nil {
				return regmap.Docs{}, err
			}

			docs.Doc = strings.TrimRight(doc, "\n")
		}
	}

	return docs, nil
}

func parseEnumEntries(name string, isShared bool, docs regmap.Docs, node *yaml.Node) (*regmap.Enum, error) {
	entryNodes, err := mappingEntries(node)

	if err != nil {
		return nil, err
	}

	enum := &regmap.Enum{
		Name:     name,
		IsShared: isShared,
		Docs:     docs,
		Entries:  utils.MakeOrderedMap[*regmap.EnumEntry](),
	}

	for _, entryNode := range entryNodes {
		fields, err := mappingEntries(entryNode.Second)

		if err != nil {
			return nil, err
		}

		entry := &regmap.EnumEntry{Name: entryNode.First}
		hasValue := false

		for _, field := range fields {
			switch field.First {
			case "val":
				value, err := scalarUint(field.Second)

				if err != nil {
					return nil, err
				}

				entry.Value = value
				hasValue = true
			case "brief", "doc":
				docs, err := parseDocs(fields)

				if err != nil {
					return nil, err
				}

				entry.Docs = docs
			default:
				return nil, utils.MakeError(ErrMalformedListing, "unknown enum entry key '%v' at line %v", field.First, field.Second.Line)
			}
		}

		if !hasValue {
			return nil, utils.MakeError(ErrMalformedListing, "enum '%v' entry '%v' has no val", name, entryNode.First)
		}

		if enum.Entries.Has(entry.Name) {
			return nil, utils.MakeError(ErrMalformedListing, "enum '%v' entry '%v' given twice", name, entry.Name)
		}

		enum.Entries.Set(entry.Name, entry)
	}

	return enum, nil
}

func (p *parser) parseField(name string, node *yaml.Node) (*regmap.Field, error) {
	entries, err := mappingEntries(node)

	if err != nil {
		return nil, err
	}

	docs, err := parseDocs(entries)

	if err != nil {
		return nil, err
	}

	field := &regmap.Field{
		Name: name,
		Docs: docs,
	}

	hasBits := false

	for _, entry := range entries {
		switch entry.First {
		case "bits":
			bits, err := parseBits(entry.Second)

			if err != nil {
				return nil, utils.MakeError(err, "field '%v'", name)
			}

			field.Bits = bits
			hasBits = true
		case "access":
			access, err := parseAccess(entry.Second)

			if err != nil {
				return nil, utils.MakeError(err, "field '%v'", name)
			}

			field.Access = access
		case "enum":
			// Either the name of a shared enum or an inline entry mapping
			if entry.Second.Kind == yaml.ScalarNode {
				enumName, err := scalarString(entry.Second)

				if err != nil {
					return nil, err
				}

				shared, ok := p.enums.Get(enumName)

				if !ok {
					return nil, utils.MakeError(ErrUnknownEnum, "'%v' referenced by field '%v' at line %v", enumName, name, entry.Second.Line)
				}

				field.Enum = shared
			} else {
				enum, err := parseEnumEntries(name, false, regmap.Docs{}, entry.Second)

				if err != nil {
					return nil, utils.MakeError(err, "field '%v'", name)
				}

				field.Enum = enum
			}
		case "brief", "doc":
		default:
			return nil, utils.MakeError(ErrMalformedListing, "unknown field key '%v' at line %v", entry.First, entry.Second.Line)
		}
	}

	if !hasBits {
		return nil, utils.MakeError(ErrMalformedListing, "field '%v' has no bits", name)
	}

	if len(field.Access) == 0 {
		field.Access = p.defaults.FieldAccess
	}

	return field, nil
}

func (p *parser) parseAlwaysWrite(node *yaml.Node) (*regmap.AlwaysWrite, error) {
	entries, err := mappingEntries(node)

	if err != nil {
		return nil, err
	}

	aw := &regmap.AlwaysWrite{}
	hasBits, hasValue := false, false

	for _, entry := range entries {
		switch entry.First {
		case "bits":
			bits, err := parseBits(entry.Second)

			if err != nil {
				return nil, err
			}

			aw.Bits = bits
			hasBits = true
		case "val":
			value, err := scalarUint(entry.Second)

			if err != nil {
				return nil, err
			}

			aw.Value = value
			hasValue = true
		default:
			return nil, utils.MakeError(ErrMalformedListing, "unknown always_write key '%v' at line %v", entry.First, entry.Second.Line)
		}
	}

	if !hasBits || !hasValue {
		return nil, utils.MakeError(ErrMalformedListing, "always_write at line %v needs both bits and val", node.Line)
	}

	return aw, nil
}

func (p *parser) parseRegister(name string, node *yaml.Node) (*regmap.Register, *utils.OrderedMap[uint64], error) {
	entries, err := mappingEntries(node)

	if err != nil {
		return nil, nil, err
	}

	docs, err := parseDocs(entries)

	if err != nil {
		return nil, nil, err
	}

	register := &regmap.Register{
		Name:     name,
		Fields:   utils.MakeOrderedMap[*regmap.Field](),
		Bitwidth: p.defaults.LayoutBitwidth,
		Docs:     docs,
	}

	instances := utils.MakeOrderedMap[uint64]()

	for _, entry := range entries {
		switch entry.First {
		case "adr":
			offset, err := scalarUint(entry.Second)

			if err != nil {
				return nil, nil, utils.MakeError(err, "register '%v'", name)
			}

			register.Offset = offset
		case "bitwidth":
			bitwidth, err := scalarUint(entry.Second)

			if err != nil {
				return nil, nil, utils.MakeError(err, "register '%v'", name)
			}

			register.Bitwidth = uint(bitwidth)
		case "reset_val":
			reset, err := scalarUint(entry.Second)

			if err != nil {
				return nil, nil, utils.MakeError(err, "register '%v'", name)
			}

			register.ResetValue = &reset
		case "always_write":
			aw, err := p.parseAlwaysWrite(entry.Second)

			if err != nil {
				return nil, nil, utils.MakeError(err, "register '%v'", name)
			}

			register.AlwaysWrite = aw
		case "instances":
			instanceNodes, err := mappingEntries(entry.Second)

			if err != nil {
				return nil, nil, utils.MakeError(err, "register '%v'", name)
			}

			for _, instanceNode := range instanceNodes {
				offset, err := scalarUint(instanceNode.Second)

				if err != nil {
					return nil, nil, utils.MakeError(err, "register '%v', instance '%v'", name, instanceNode.First)
				}

				instances.Set(instanceNode.First, offset)
			}
		case "layout":
			fieldNodes, err := mappingEntries(entry.Second)

			if err != nil {
				return nil, nil, utils.MakeError(err, "register '%v'", name)
			}

			for _, fieldNode := range fieldNodes {
				field, err := p.parseField(fieldNode.First, fieldNode.Second)

				if err != nil {
					return nil, nil, utils.MakeError(err, "register '%v'", name)
				}

				if register.Fields.Has(field.Name) {
					return nil, nil, utils.MakeError(ErrMalformedListing, "register '%v': field '%v' given twice", name, field.Name)
				}

				register.Fields.Set(field.Name, field)
			}
		case "brief", "doc":
		default:
			return nil, nil, utils.MakeError(ErrMalformedListing, "unknown register key '%v' at line %v", entry.First, entry.Second.Line)
		}
	}

	if register.Bitwidth == 0 {
		return nil, nil, utils.MakeError(ErrMalformedListing, "register '%v' has no bitwidth and the listing declares no default", name)
	}

	// A register without explicit instances is a single physical copy at
	// offset zero
	if instances.Len() == 0 {
		instances.Set(name, 0)
	}

	return register, instances, nil
}

// Parses a register block: a named group of registers repeated once per
// instance. Members use the same schema as standalone registers but cannot
// declare instances of their own
func (p *parser) parseBlock(name string, node *yaml.Node) (*regmap.RegisterBlock, error) {
	entries, err := mappingEntries(node)

	if err != nil {
		return nil, err
	}

	docs, err := parseDocs(entries)

	if err != nil {
		return nil, err
	}

	block := &regmap.RegisterBlock{
		Name:      name,
		Instances: utils.MakeOrderedMap[uint64](),
		Docs:      docs,
		Registers: utils.MakeOrderedMap[*regmap.Register](),
	}

	for _, entry := range entries {
		switch entry.First {
		case "instances":
			instanceNodes, err := mappingEntries(entry.Second)

			if err != nil {
				return nil, utils.MakeError(err, "block '%v'", name)
			}

			for _, instanceNode := range instanceNodes {
				offset, err := scalarUint(instanceNode.Second)

				if err != nil {
					return nil, utils.MakeError(err, "block '%v', instance '%v'", name, instanceNode.First)
				}

				block.Instances.Set(instanceNode.First, offset)
			}
		case "registers":
			registerNodes, err := mappingEntries(entry.Second)

			if err != nil {
				return nil, utils.MakeError(err, "block '%v'", name)
			}

			for _, registerNode := range registerNodes {
				register, instances, err := p.parseRegister(registerNode.First, registerNode.Second)

				if err != nil {
					return nil, utils.MakeError(err, "block '%v'", name)
				}

				if instances.Len() != 1 || !instances.Has(register.Name) {
					return nil, utils.MakeError(ErrMalformedListing, "block '%v', register '%v': instances belong to the block, not its registers", name, register.Name)
				}

				if block.Registers.Has(register.Name) {
					return nil, utils.MakeError(ErrMalformedListing, "block '%v': register '%v' given twice", name, register.Name)
				}

				block.Registers.Set(register.Name, register)
			}
		case "brief", "doc":
		default:
			return nil, utils.MakeError(ErrMalformedListing, "unknown block key '%v' at line %v", entry.First, entry.Second.Line)
		}
	}

	if block.Registers.Len() == 0 {
		return nil, utils.MakeError(ErrMalformedListing, "block '%v' declares no registers", name)
	}

	if block.Instances.Len() == 0 {
		block.Instances.Set(name, 0)
	}

	return block, nil
}

// True when a top level registers entry declares a block (a nested registers
// mapping) rather than a standalone register
func isBlockNode(node *yaml.Node) bool {
	entries, err := mappingEntries(node)

	if err != nil {
		return false
	}

	for _, entry := range entries {
		if entry.First == "registers" {
			return true
		}
	}

	return false
}

func (p *parser) parseDefaults(node *yaml.Node) error {
	entries, err := mappingEntries(node)

	if err != nil {
		return err
	}

	for _, entry := range entries {
		switch entry.First {
		case "layout_bitwidth":
			bitwidth, err := scalarUint(entry.Second)

			if err != nil {
				return err
			}

			p.defaults.LayoutBitwidth = uint(bitwidth)
		case "field_access":
			access, err := parseAccess(entry.Second)

			if err != nil {
				return err
			}

			p.defaults.FieldAccess = access
		default:
			return utils.MakeError(ErrMalformedListing, "unknown defaults key '%v' at line %v", entry.First, entry.Second.Line)
		}
	}

	return nil
}

// Parses a register map listing and validates the resulting model
func Parse(r io.Reader) (*regmap.RegisterMap, error) {
	var document yaml.Node

	if err := yaml.NewDecoder(r).Decode(&document); err != nil {
		return nil, utils.MakeError(ErrMalformedListing, "%v", err)
	}

	root := &document

	if root.Kind == yaml.DocumentNode {
		if len(root.Content) != 1 {
			return nil, utils.MakeError(ErrMalformedListing, "expected a single yaml document")
		}

		root = root.Content[0]
	}

	entries, err := mappingEntries(root)

	if err != nil {
		return nil, err
	}

	docs, err := parseDocs(entries)

	if err != nil {
		return nil, err
	}

	m := &regmap.RegisterMap{
		Docs:   docs,
		Blocks: utils.MakeOrderedMap[*regmap.RegisterBlock](),
		Enums:  utils.MakeOrderedMap[*regmap.Enum](),
	}

	p := &parser{
		// A sensible default when the listing declares none: all fields
		// readable and writable
		defaults: defaults{FieldAccess: []regmap.AccessMode{regmap.AccessMode_Read, regmap.AccessMode_Write}},
		enums:    m.Enums,
	}

	// Defaults and shared enums must be resolved before registers reference
	// them, regardless of where they appear in the document
	for _, entry := range entries {
		switch entry.First {
		case "defaults":
			if err := p.parseDefaults(entry.Second); err != nil {
				return nil, err
			}
		case "enums":
			enumNodes, err := mappingEntries(entry.Second)

			if err != nil {
				return nil, err
			}

			for _, enumNode := range enumNodes {
				enumEntries, err := mappingEntries(enumNode.Second)

				if err != nil {
					return nil, err
				}

				enumDocs, err := parseDocs(enumEntries)

				if err != nil {
					return nil, err
				}

				var enum *regmap.Enum

				for _, enumEntry := range enumEntries {
					if enumEntry.First != "enum" {
						continue
					}

					enum, err = parseEnumEntries(enumNode.First, true, enumDocs, enumEntry.Second)

					if err != nil {
						return nil, err
					}
				}

				if enum == nil {
					return nil, utils.MakeError(ErrMalformedListing, "shared enum '%v' has no enum entry mapping", enumNode.First)
				}

				if m.Enums.Has(enum.Name) {
					return nil, utils.MakeError(ErrMalformedListing, "shared enum '%v' given twice", enum.Name)
				}

				m.Enums.Set(enum.Name, enum)
			}
		}
	}

	for _, entry := range entries {
		switch entry.First {
		case "name":
			name, err := scalarString(entry.Second)

			if err != nil {
				return nil, err
			}

			m.DeviceName = name
		case "author":
			author, err := scalarString(entry.Second)

			if err != nil {
				return nil, err
			}

			m.Author = author
		case "notice":
			notice, err := scalarString(entry.Second)

			if err != nil {
				return nil, err
			}

			m.Notice = strings.TrimRight(notice, "\n")
		case "registers":
			registerNodes, err := mappingEntries(entry.Second)

			if err != nil {
				return nil, err
			}

			for _, registerNode := range registerNodes {
				if m.Blocks.Has(registerNode.First) {
					return nil, utils.MakeError(ErrMalformedListing, "register or block '%v' given twice", registerNode.First)
				}

				if isBlockNode(registerNode.Second) {
					block, err := p.parseBlock(registerNode.First, registerNode.Second)

					if err != nil {
						return nil, err
					}

					m.Blocks.Set(block.Name, block)
					continue
				}

				register, instances, err := p.parseRegister(registerNode.First, registerNode.Second)

				if err != nil {
					return nil, err
				}

				// A standalone register is sugar for a block of one register
				// carrying the register's own instances
				block := &regmap.RegisterBlock{
					Name:      register.Name,
					Instances: instances,
					Docs:      register.Docs,
					Registers: utils.MakeOrderedMap[*regmap.Register](),
				}

				block.Registers.Set(register.Name, register)
				m.Blocks.Set(block.Name, block)
			}
		case "defaults", "enums", "brief", "doc":
		default:
			return nil, utils.MakeError(ErrMalformedListing, "unknown listing key '%v' at line %v", entry.First, entry.Second.Line)
		}
	}

	if m.DeviceName == "" {
		return nil, utils.MakeError(ErrMalformedListing, "listing declares no device name")
	}

	if err := regmap.Validate(m); err != nil {
		return nil, err
	}

	return m, nil
}

// Parses a register map listing from a file
func ParseFile(path string) (*regmap.RegisterMap, error) {
	f, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("cannot open register map listing: %w", err)
	}

	defer f.Close()

	return Parse(f)
}
