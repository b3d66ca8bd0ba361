/*
Package alias defines workflow aliases: a command name standing for an
ordered chain of other command names.
*/
package alias

import "sort"

/*
Alias maps a short name to the chain it expands to, for example
"build" -> "clean,lint,types,bundle".
*/
type Alias struct {
	Command string `yaml:"command"`
	Name    string `yaml:"alias"`
}

// Table is the lookup form of a set of aliases, keyed by alias name.
type Table map[string]string

// NewTable builds a Table from a list. Later entries win on duplicate names.
func NewTable(aliases []Alias) Table {
	t := make(Table, len(aliases))
	for _, a := range aliases {
		t[a.Name] = a.Command
	}
	return t
}

// Lookup returns the expansion for name, if any.
func (t Table) Lookup(name string) (string, bool) {
	expansion, ok := t[name]
	if !ok || expansion == "" {
		return "", false
	}
	return expansion, true
}

// Merge returns a new table holding t overlaid with overrides.
// Neither input is modified.
func (t Table) Merge(overrides map[string]string) Table {
	out := make(Table, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// List returns the table as aliases sorted by name.
func (t Table) List() []Alias {
	out := make([]Alias, 0, len(t))
	for name, cmd := range t {
		out = append(out, Alias{Name: name, Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
