package regmap

// A named bit set within a register
type Field struct {
	Name string
	Bits Bits
	// Non empty, order preserving. Duplicates are permitted but redundant
	Access []AccessMode
	Docs   Docs
	// Optional enum restricting the legal values of the field.
	// Nil when the field accepts any value that fits its bits
	Enum *Enum
}

func (f *Field) AccessString() string {
	return AccessString(f.Access)
}

// Looks up the name of the first enum entry (in declared order) whose value
// equals the given value. Returns false if the field has no enum or no entry
// matches. When several entries share the same value the first one declared
// wins
func (f *Field) LookupEnumEntryName(value uint64) (string, bool) {
	if f.Enum == nil {
		return "", false
	}

	for _, entry := range f.Enum.Entries.Values() {
		if entry.Value == value {
			return entry.Name, true
		}
	}

	return "", false
}
