package handlebars

import (
	"fmt"

	"github.com/heathj/hbsyntax/parser/ast"
	"github.com/pkg/errors"
)

// Exception is a semantic error found while reducing the grammar, such as
// a block closed under the wrong name. Loc points at the offending node.
type Exception struct {
	Message string
	Loc     *ast.SourceLocation
}

func (e *Exception) Error() string {
	if e.Loc == nil {
		return e.Message
	}
	return fmt.Sprintf("%s - %d:%d", e.Message, e.Loc.Start.Line, e.Loc.Start.Column)
}

func newException(message string, loc *ast.SourceLocation) error {
	return errors.WithStack(&Exception{Message: message, Loc: loc})
}
