package goinspect

import "strings"

// MatchKind classifies the outcome of Resolve.
type MatchKind uint8

const (
	MatchNone MatchKind = iota
	MatchCommand
	MatchField
)

// Match is what an operator key resolved to.
type Match struct {
	Kind    MatchKind
	Command *Command
	Field   Field
	Slot    int // position of Field in the resolved field list
}

// IsCommand reports whether the key named a command.
func (m Match) IsCommand() bool { return m.Kind == MatchCommand }

// Resolve maps an operator key to a command or a field:
//
//  1. integer keys address fields by position (see IndexFields); commands are
//     never integer-addressed;
//  2. names match commands, then fields, by case-insensitive prefix; the first
//     match in declaration order wins;
//  3. any other key matches a field key by equality.
//
// A zero Match means the caller should treat the input as an expression.
func Resolve(key Key, cmds *Commands, fields []Field) Match {
	switch key.Kind() {
	case KeyIndex:
		n, _ := key.Index()
		if slot, ok := positionOf(IndexFields(fields), n); ok {
			return Match{Kind: MatchField, Field: fields[slot], Slot: slot}
		}
	case KeyName:
		prefix := strings.ToLower(key.Name())
		if prefix == "" {
			return Match{}
		}
		if cmds != nil {
			if c, ok := cmds.Lookup(prefix); ok {
				return Match{Kind: MatchCommand, Command: c}
			}
		}
		for i, f := range fields {
			if f.Key.Kind() == KeyName && strings.HasPrefix(strings.ToLower(f.Key.Name()), prefix) {
				return Match{Kind: MatchField, Field: f, Slot: i}
			}
		}
	default:
		for i, f := range fields {
			if f.Key.Equal(key) {
				return Match{Kind: MatchField, Field: f, Slot: i}
			}
		}
	}
	return Match{}
}

// findField resolves key against fields only, as set-field and istep do.
func findField(key Key, fields []Field) (Field, bool) {
	m := Resolve(key, nil, fields)
	return m.Field, m.Kind == MatchField
}
