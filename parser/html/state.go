package html

import "github.com/pkg/errors"

//go:generate stringer -type=State -linecomment

// State is a state of the tokenizer state machine.
type State uint

const (
	BeforeDataState State = iota    // beforeData
	DataState                       // data
	TagOpenState                    // tagOpen
	MarkupDeclarationState          // markupDeclaration
	CommentStartState               // commentStart
	CommentStartDashState           // commentStartDash
	CommentState                    // comment
	CommentEndDashState             // commentEndDash
	CommentEndState                 // commentEnd
	TagNameState                    // tagName
	EndTagOpenState                 // endTagOpen
	BeforeAttributeNameState        // beforeAttributeName
	AttributeNameState              // attributeName
	AfterAttributeNameState         // afterAttributeName
	BeforeAttributeValueState       // beforeAttributeValue
	AttributeValueDoubleQuotedState // attributeValueDoubleQuoted
	AttributeValueSingleQuotedState // attributeValueSingleQuoted
	AttributeValueUnquotedState     // attributeValueUnquoted
	AfterAttributeValueQuotedState  // afterAttributeValueQuoted
	SelfClosingStartTagState        // selfClosingStartTag
)

func errUnknownState(s State) error {
	return errors.Errorf("tokenizer: unknown state %s", s)
}
