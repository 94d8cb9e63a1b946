package regmap

import "strings"

// Optional documentation attached to a named entity of the model.
// An empty string means the corresponding text was not given
type Docs struct {
	// One line summary
	Brief string
	// Longer description, possibly spanning multiple lines
	Doc string
}

func (d Docs) Empty() bool {
	return d.Brief == "" && d.Doc == ""
}

// Renders the docs as a list of lines, each prefixed with the given prefix.
// The long description keeps its own line breaks
func (d Docs) AsMultiLine(prefix string) []string {
	var result []string

	if d.Brief != "" {
		result = append(result, prefix+d.Brief)
	}

	if d.Doc != "" {
		for _, line := range strings.Split(d.Doc, "\n") {
			result = append(result, prefix+line)
		}
	}

	return result
}

// Renders the docs as at most two lines, collapsing the long description
// into a single line
func (d Docs) AsTwoLine(prefix string) []string {
	var result []string

	if d.Brief != "" {
		result = append(result, prefix+d.Brief)
	}

	if d.Doc != "" {
		result = append(result, prefix+strings.Join(strings.Fields(d.Doc), " "))
	}

	return result
}
