/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: compiler.go
Description: Grammar compiler for the generation engine. Transforms a parsed rule
set into a flat fragment arena with index-based references, using a two-pass scheme
so that forward and mutually recursive rule references resolve cleanly.
*/

package grammar

import (
	"errors"
	"fmt"
)

// ErrMissingStart is returned by Compile when the grammar defines no <start>
// rule.
var ErrMissingStart = errors.New("grammar has no <start> rule")

// DuplicateRuleError is returned by Compile when two rules share a name.
type DuplicateRuleError struct {
	Rule string
}

// Error implements the error interface.
func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule definition: %q", e.Rule)
}

// Compile transforms a parsed rule set into an immutable fragment arena.
//
// Compilation runs in two passes. The first pass allocates an empty
// NonTerminal placeholder for every rule name, so that the second pass can
// resolve any symbol reference by name regardless of definition order
// (grammars are routinely mutually recursive). The second pass builds one
// Expression fragment per alternative and overwrites each rule's placeholder
// children in place. Placeholder overwrite relies on arena ids being stable
// under later appends.
//
// A symbol that resolves to a rule name becomes a singleton NonTerminal
// wrapper around that rule's fragment, keeping Expression children uniform
// for the derivation walker. A symbol that matches no rule is treated as a
// literal terminal with the symbol's own bytes; typos in rule references are
// therefore silently literal. That permissiveness is intentional and callers
// wanting stricter validation must check symbol names themselves.
func Compile(rules Rules) (*Grammar, error) {
	g := &Grammar{
		names: make(map[string]FragmentID, len(rules)),
	}

	// Pass 1: allocate a placeholder per rule so every later name lookup hits.
	for name := range rules {
		if _, seen := g.names[name]; seen {
			return nil, &DuplicateRuleError{Rule: name}
		}
		g.names[name] = g.allocate(Fragment{Kind: FragNonTerminal})
	}

	// Pass 2: build the alternatives and patch each placeholder in place.
	for name, alternatives := range rules {
		ruleID := g.names[name]

		expressions := make([]FragmentID, 0, len(alternatives))
		for _, alternative := range alternatives {
			symbols := make([]FragmentID, 0, len(alternative))
			for _, symbol := range alternative {
				var id FragmentID
				if ref, ok := g.names[symbol]; ok {
					// Singleton wrapper: a by-name reference becomes an
					// index reference without special-casing the walker.
					id = g.allocate(Fragment{
						Kind:     FragNonTerminal,
						Children: []FragmentID{ref},
					})
				} else {
					id = g.allocate(Fragment{
						Kind:  FragTerminal,
						Bytes: []byte(symbol),
					})
				}
				symbols = append(symbols, id)
			}
			expressions = append(expressions, g.allocate(Fragment{
				Kind:     FragExpression,
				Children: symbols,
			}))
		}

		g.fragments[ruleID].Children = expressions
	}

	start, ok := g.names[StartRule]
	if !ok {
		return nil, ErrMissingStart
	}
	g.start = start

	return g, nil
}
