//go:build tools
// +build tools

package main

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// Requirements lists the rule ids the reference policies depend on.
type Requirements struct {
	Required []string `json:"required"`
}

// getRequiredRules parses the requirements file to get rule ids
func getRequiredRules(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read requirements file: %w", err)
	}

	var reqs Requirements
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("failed to parse requirements JSON: %w", err)
	}

	required := make(map[string]bool)
	for _, id := range reqs.Required {
		required[id] = false // not found yet
	}

	return required, nil
}

// getImplementedRules scans the rule library for evaluator constructions
func getImplementedRules() (map[string]bool, error) {
	implemented := make(map[string]bool)

	err := filepath.Walk("pkg/authz/rules", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return err
		}

		// Every rule in the library is built through authz.NewEvaluator with
		// a string-literal id as the first argument.
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || len(call.Args) == 0 {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || sel.Sel.Name != "NewEvaluator" {
				return true
			}

			if lit, ok := call.Args[0].(*ast.BasicLit); ok && lit.Kind == token.STRING {
				ruleID := strings.Trim(lit.Value, "\"")
				implemented[ruleID] = true
			}
			return true
		})
		return nil
	})

	return implemented, err
}

func main() {
	required, err := getRequiredRules("policy/required_rules.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting required rules: %v\n", err)
		os.Exit(1)
	}

	implemented, err := getImplementedRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning rule library: %v\n", err)
		os.Exit(1)
	}

	missing := []string{}
	for ruleID := range required {
		if !implemented[ruleID] {
			missing = append(missing, ruleID)
		}
	}

	if len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: The following required rules have no evaluator implementations:\n")
		for _, ruleID := range missing {
			fmt.Fprintf(os.Stderr, "  - %s\n", ruleID)
		}
		os.Exit(1)
	}

	fmt.Println("SUCCESS: All required rules have evaluator implementations.")
}
