/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader_test.go
Description: Tests for the JSON grammar loader. Covers the on-disk format, duplicate
rule detection at parse time, and file loading.
*/

package grammar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/akaylee-gramgen/pkg/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRules tests parsing the JSON grammar format
func TestParseRules(t *testing.T) {
	runTest(t, "TestParseRules", func(t *testing.T) {
		data := []byte(`{
			"<start>": [["<a>"], ["<b>"]],
			"<a>": [["x"]],
			"<b>": [["y"]]
		}`)

		rules, err := grammar.ParseRules(data)
		require.NoError(t, err)
		require.Len(t, rules, 3)
		assert.Equal(t, [][]string{{"<a>"}, {"<b>"}}, rules["<start>"])
		assert.Equal(t, [][]string{{"x"}}, rules["<a>"])
	})
}

// TestParseRulesDuplicateRule tests duplicate rule detection
func TestParseRulesDuplicateRule(t *testing.T) {
	runTest(t, "TestParseRulesDuplicateRule", func(t *testing.T) {
		// A plain map unmarshal would silently keep the last definition;
		// the token-driven parser must reject this instead.
		data := []byte(`{
			"<start>": [["a"]],
			"<start>": [["b"]]
		}`)

		rules, err := grammar.ParseRules(data)
		require.Error(t, err)

		var dup *grammar.DuplicateRuleError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "<start>", dup.Rule)
		assert.Nil(t, rules, "No partial rule set should be returned")
	})
}

// TestParseRulesNotAnObject tests rejection of non-object grammars
func TestParseRulesNotAnObject(t *testing.T) {
	runTest(t, "TestParseRulesNotAnObject", func(t *testing.T) {
		_, err := grammar.ParseRules([]byte(`[["<start>"]]`))
		assert.Error(t, err)
	})
}

// TestParseRulesInvalidAlternatives tests rejection of malformed rule bodies
func TestParseRulesInvalidAlternatives(t *testing.T) {
	runTest(t, "TestParseRulesInvalidAlternatives", func(t *testing.T) {
		_, err := grammar.ParseRules([]byte(`{"<start>": "not-a-list"}`))
		assert.Error(t, err)
	})
}

// TestLoadRulesMissingFile tests the missing-file error path
func TestLoadRulesMissingFile(t *testing.T) {
	runTest(t, "TestLoadRulesMissingFile", func(t *testing.T) {
		_, err := grammar.LoadRules(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

// TestLoadAndCompile tests the full load-parse-compile path
func TestLoadAndCompile(t *testing.T) {
	runTest(t, "TestLoadAndCompile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "grammar.json")
		data := []byte(`{"<start>": [["<word>", "!"]], "<word>": [["hi"], ["yo"]]}`)
		require.NoError(t, os.WriteFile(path, data, 0644))

		g, err := grammar.LoadAndCompile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, g.NumRules())

		gen := grammar.NewGenerator(g, 17)
		for i := 0; i < 20; i++ {
			out := string(gen.Generate())
			assert.Contains(t, []string{"hi!", "yo!"}, out)
		}
	})
}
