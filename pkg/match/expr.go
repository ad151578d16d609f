package match

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type exprMatcher struct {
	src     string
	program *vm.Program
}

// Expr matches arguments with an expr-lang expression. The argument is
// bound as `arg`:
//
//	m, err := match.Expr(`arg > 10 && arg < 100`)
//	m, err := match.Expr(`arg.Name startsWith "acct-"`)
//
// The expression is compiled once, at construction; a compile failure is a
// construction error. A runtime evaluation error counts as no match.
func Expr(src string) (Matcher, error) {
	program, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", src, err)
	}
	return exprMatcher{src: src, program: program}, nil
}

func (m exprMatcher) Matches(v any) bool {
	out, err := expr.Run(m.program, map[string]any{"arg": v})
	matched := err == nil && out == true
	return report(m, matched)
}

func (m exprMatcher) String() string { return fmt.Sprintf("expr(%s)", m.src) }
