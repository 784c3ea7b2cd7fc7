package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/heathj/hbsyntax/parser/ast"
)

type treeTest struct {
	in       string
	errors   string
	expected string
}

// getExpectedAndErrors reads the #errors and #document sections that follow
// the input of a test.
func getExpectedAndErrors(splits []string) (string, string) {
	var errs []string
	expected := ""
	for i := range splits {
		switch splits[i] {
		case "#errors":
			for j := i + 1; j < len(splits) && splits[j] != "#document"; j++ {
				if len(splits[j]) == 0 {
					continue
				}
				errs = append(errs, splits[j])
			}
		case "#document":
			expected = "#program\n"
			for j := i + 1; j < len(splits); j++ {
				if len(splits[j]) == 0 {
					continue
				}

				expected += splits[j] + "\n"
			}
			return expected, strings.Join(errs, "\n")
		}
	}
	return expected, strings.Join(errs, "\n")
}

func parseTests(t *testing.T, path string) []treeTest {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
		return nil
	}

	tests := strings.Split(string(data), "#data\n")
	var treeTests []treeTest
	for i, test := range tests {
		if i == 0 {
			continue
		}
		tt := treeTest{}
		splits := strings.Split(test, "\n")
		var in []string
		for _, s := range splits {
			if s == "#document" || s == "#errors" {
				break
			}
			in = append(in, s)
		}
		tt.in = strings.Join(in, "\n")
		tt.expected, tt.errors = getExpectedAndErrors(splits)
		treeTests = append(treeTests, tt)
	}
	return treeTests
}

func TestTreeConstruction(t *testing.T) {
	files, err := filepath.Glob("testdata/*.dat")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test files found")
	}

	for _, file := range files {
		for _, test := range parseTests(t, file) {
			test := test
			t.Run(test.in, func(t *testing.T) {
				t.Parallel()
				out, err := Preprocess(test.in, Options{})
				if test.errors != "" {
					if err == nil {
						t.Fatalf("Expected error %q, got none", test.errors)
					}
					if err.Error() != test.errors {
						t.Errorf("Wrong error. Expected: %q, Got: %q", test.errors, err.Error())
					}
					return
				}
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if diff := cmp.Diff(test.expected, ast.Print(out)); diff != "" {
					t.Errorf("Wrong tree (-want +got):\n%s", diff)
				}
			})
		}
	}
}
