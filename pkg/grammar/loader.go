/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader.go
Description: JSON grammar loading for the generation engine. Parses the on-disk
grammar format (rule name to list of alternatives, each a list of symbols) with
duplicate-rule detection, which encoding/json's map decoding would silently drop.
*/

package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ParseRules parses the JSON grammar format into a Rules map. The format is a
// single JSON object whose keys are rule names and whose values are arrays of
// alternatives, each alternative an array of symbol strings.
//
// Parsing is token-driven rather than a direct unmarshal into a map: a JSON
// object with a repeated key would otherwise collapse to the last value and a
// duplicated rule definition would go unnoticed. A repeated rule name fails
// with DuplicateRuleError.
func ParseRules(data []byte) (Rules, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse grammar: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("grammar must be a JSON object, got %v", tok)
	}

	rules := make(Rules)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse grammar: %w", err)
		}
		name := keyTok.(string)
		if _, seen := rules[name]; seen {
			return nil, &DuplicateRuleError{Rule: name}
		}

		var alternatives [][]string
		if err := dec.Decode(&alternatives); err != nil {
			return nil, fmt.Errorf("invalid alternatives for rule %q: %w", name, err)
		}
		rules[name] = alternatives
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse grammar: %w", err)
	}

	return rules, nil
}

// LoadRules reads and parses a grammar file from disk.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar file: %w", err)
	}
	return ParseRules(data)
}

// LoadAndCompile reads, parses, and compiles a grammar file in one step.
func LoadAndCompile(path string) (*Grammar, error) {
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return Compile(rules)
}
