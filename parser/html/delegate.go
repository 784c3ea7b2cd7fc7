package html

// Delegate receives the events of a Tokenizer. The tokenizer never builds
// nodes itself; every piece of structure it recognizes is reported here in
// source order.
type Delegate interface {
	Reset()
	TagOpen()

	BeginData()
	AppendToData(s string)
	FinishData()

	BeginComment()
	AppendToCommentData(s string)
	FinishComment()

	BeginStartTag()
	BeginEndTag()
	AppendToTagName(s string)
	MarkTagAsSelfClosing()
	FinishTag() error

	BeginAttribute()
	AppendToAttributeName(s string)
	BeginAttributeValue(quoted bool)
	AppendToAttributeValue(s string)
	FinishAttributeValue() error
}
