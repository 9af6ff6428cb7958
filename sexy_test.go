package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/minic/compiler"
	"github.com/strager/minic/sexy"
)

func TestSexyAllTests(t *testing.T) {
	// Find all test files in the test/ directory
	testFiles, err := filepath.Glob("test/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		fileName := filepath.Base(testFile)
		testName := strings.TrimSuffix(fileName, ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := sexy.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					switch tc.InputType {
					case sexy.InputTypeMiniLex:
						runLexCase(t, tc)
					case sexy.InputTypeMiniProgram:
						runProgramCase(t, tc)
					default:
						t.Fatalf("Unknown input type: %s", tc.InputType)
					}
				})
			}
		})
	}
}

func runLexCase(t *testing.T, tc sexy.TestCase) {
	tokens, lexErr := compiler.Tokenize(tc.Input)

	for i, assertion := range tc.Assertions {
		t.Run("assertion_"+string(rune('a'+i)), func(t *testing.T) {
			switch assertion.Type {
			case sexy.AssertionTypeTokens:
				be.Err(t, lexErr, nil)
				assertSexyMatch(t, tokensToSexy(tokens), assertion.ParsedSexy)
			case sexy.AssertionTypeCompileError:
				be.True(t, lexErr != nil)
				be.Equal(t, lexErr.Error(), assertion.Content)
			default:
				t.Fatalf("assertion %s does not apply to %s input", assertion.Type, tc.InputType)
			}
		})
	}
}

func runProgramCase(t *testing.T, tc sexy.TestCase) {
	opts := compiler.Options{UnrollFactor: 1}
	if uf, ok := tc.Options["uf"]; ok {
		n, err := strconv.Atoi(uf)
		be.Err(t, err, nil)
		opts.UnrollFactor = n
	}

	c := compiler.New(opts)
	fn, compileErr := c.Parse(tc.Input)
	var program *compiler.Program
	if compileErr == nil {
		program, compileErr = c.Generate(fn)
	}

	for i, assertion := range tc.Assertions {
		t.Run("assertion_"+string(rune('a'+i)), func(t *testing.T) {
			switch assertion.Type {
			case sexy.AssertionTypeAST:
				be.Err(t, compileErr, nil)
				actual, err := sexy.Parse(compiler.ToSExpr(fn))
				be.Err(t, err, nil)
				assertSexyMatch(t, actual, assertion.ParsedSexy)
			case sexy.AssertionTypeIR:
				be.Err(t, compileErr, nil)
				be.Equal(t, strings.TrimRight(program.String(), "\n"), assertion.Content)
			case sexy.AssertionTypeCompileError:
				be.True(t, compileErr != nil)
				be.Equal(t, compileErr.Error(), assertion.Content)
			default:
				t.Fatalf("assertion %s does not apply to %s input", assertion.Type, tc.InputType)
			}
		})
	}
}

// tokensToSexy renders tokens as ((KIND "lexeme") ...).
func tokensToSexy(tokens []compiler.Token) *sexy.Node {
	items := make([]*sexy.Node, len(tokens))
	for i, tok := range tokens {
		items[i] = sexy.NewList([]*sexy.Node{
			sexy.NewSymbol(string(tok.Kind)),
			sexy.NewString(tok.Lexeme),
		})
	}
	return sexy.NewList(items)
}

func assertSexyMatch(t *testing.T, actual, pattern *sexy.Node) {
	t.Helper()
	ok, path := sexy.Match(pattern, actual)
	if !ok {
		t.Errorf("mismatch at %s\nexpected: %s\nactual:   %s", path, pattern, actual)
	}
}
