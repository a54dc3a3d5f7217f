/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core data model for the grammar generation engine. Defines the fragment
arena, fragment identifiers, and the compiled grammar structure used by the compiler
and the derivation engine.
*/

package grammar

// StartRule is the distinguished rule name every grammar must define.
const StartRule = "<start>"

// MaxOutput is the output-size safety ceiling for a single derivation.
// Recursive grammars with no terminating path are cut off here; the check
// runs after each terminal append, so a derivation may overshoot by at most
// one terminal's length.
const MaxOutput = 1024 * 1024

// Rules is the parsed textual form of a grammar: rule name to a list of
// alternatives, each alternative an ordered list of symbol names. A symbol
// that matches a rule name is a reference; anything else is a literal.
type Rules map[string][][]string

// FragmentID is an index into a compiled grammar's fragment arena. It is only
// meaningful for the Grammar that produced it.
type FragmentID int

// FragKind discriminates the three fragment variants.
type FragKind uint8

const (
	// FragNonTerminal is a choice point: exactly one child is expanded,
	// selected uniformly at random.
	FragNonTerminal FragKind = iota
	// FragExpression is a sequence point: all children are expanded in order.
	FragExpression
	// FragTerminal is a leaf whose bytes are emitted verbatim.
	FragTerminal
)

// String returns a human-readable name for the fragment kind.
func (k FragKind) String() string {
	switch k {
	case FragNonTerminal:
		return "nonterminal"
	case FragExpression:
		return "expression"
	case FragTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Fragment is one node of the compiled fragment graph. Children is used by
// NonTerminal and Expression fragments, Bytes by Terminal fragments.
type Fragment struct {
	Kind     FragKind
	Children []FragmentID
	Bytes    []byte
}

// Grammar is the compiled, immutable form of a rule set: a flat append-only
// arena of fragments plus a name table resolving rule names to their
// NonTerminal fragments. Safe for concurrent readers once compiled; the
// mutable random state lives in each Generator, not here.
type Grammar struct {
	fragments []Fragment
	names     map[string]FragmentID
	start     FragmentID
}

// Start returns the fragment id of the <start> rule.
func (g *Grammar) Start() FragmentID {
	return g.start
}

// Fragment returns the fragment stored under the given id.
func (g *Grammar) Fragment(id FragmentID) *Fragment {
	return &g.fragments[id]
}

// NumFragments returns the total number of fragments in the arena.
func (g *Grammar) NumFragments() int {
	return len(g.fragments)
}

// NumRules returns the number of named rules.
func (g *Grammar) NumRules() int {
	return len(g.names)
}

// RuleID resolves a rule name to its NonTerminal fragment id.
func (g *Grammar) RuleID(name string) (FragmentID, bool) {
	id, ok := g.names[name]
	return id, ok
}

// RuleNames returns the names of all rules in the grammar. Order is
// unspecified.
func (g *Grammar) RuleNames() []string {
	names := make([]string, 0, len(g.names))
	for name := range g.names {
		names = append(names, name)
	}
	return names
}

// allocate appends a fragment to the arena and returns its id. Ids are dense
// and stable: the arena is append-only and never reordered.
func (g *Grammar) allocate(f Fragment) FragmentID {
	id := FragmentID(len(g.fragments))
	g.fragments = append(g.fragments, f)
	return id
}
