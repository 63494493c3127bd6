package cli

import (
	"testing"

	"github.com/elves/edline/pkg/tt"
)

func TestBracketValidator(t *testing.T) {
	tt.Test(t, tt.Fn("Validate", BracketValidator{}.Validate),
		tt.Args("").Rets(true),
		tt.Args("echo foo").Rets(true),
		tt.Args("f(a, [b])").Rets(true),
		tt.Args("f(a").Rets(false),
		tt.Args("{[").Rets(false),
		tt.Args(`echo "foo`).Rets(false),
		tt.Args(`echo "(" "foo"`).Rets(false),
		// A closer that doesn't match is ignored.
		tt.Args("(]").Rets(false),
		tt.Args("(])").Rets(true),
		tt.Args(")").Rets(true),
	)
}
