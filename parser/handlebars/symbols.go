package handlebars

// symbol is a grammar symbol. Terminals come first so that a set of
// terminals fits in a termSet; nonterminals follow.
type symbol int

const (
	symEnd symbol = iota
	tokEOF
	tokComment
	tokContent
	tokEndRawBlock
	tokOpenRawBlock
	tokCloseRawBlock
	tokOpenBlock
	tokClose
	tokOpenInverse
	tokOpenInverseChain
	tokInverse
	tokOpenEndBlock
	tokOpen
	tokOpenUnescaped
	tokCloseUnescaped
	tokOpenPartial
	tokOpenSexpr
	tokCloseSexpr
	tokID
	tokEquals
	tokOpenBlockParams
	tokCloseBlockParams
	tokString
	tokNumber
	tokBoolean
	tokUndefined
	tokNull
	tokData
	tokSep
	tokInvalid

	numTerminals
)

const (
	ntAccept symbol = numTerminals + iota
	ntRoot
	ntProgram
	ntStatements
	ntStatement
	ntContent
	ntRawBlock
	ntContents
	ntOpenRawBlock
	ntBlock
	ntOpenBlock
	ntOpenInverse
	ntOpenInverseChain
	ntInverseAndProgram
	ntInverseChain
	ntOptInverseChain
	ntOptInverseAndProgram
	ntCloseBlock
	ntMustache
	ntPartial
	ntParams
	ntParam
	ntSexpr
	ntOptHash
	ntHash
	ntHashSegments
	ntHashSegment
	ntOptBlockParams
	ntBlockParams
	ntIDs
	ntHelperName
	ntPartialName
	ntDataName
	ntPath
	ntPathSegments

	numSymbols
)

var symbolNames = [numSymbols]string{
	symEnd:              "EOF",
	tokEOF:              "EOF",
	tokComment:          "COMMENT",
	tokContent:          "CONTENT",
	tokEndRawBlock:      "END_RAW_BLOCK",
	tokOpenRawBlock:     "OPEN_RAW_BLOCK",
	tokCloseRawBlock:    "CLOSE_RAW_BLOCK",
	tokOpenBlock:        "OPEN_BLOCK",
	tokClose:            "CLOSE",
	tokOpenInverse:      "OPEN_INVERSE",
	tokOpenInverseChain: "OPEN_INVERSE_CHAIN",
	tokInverse:          "INVERSE",
	tokOpenEndBlock:     "OPEN_ENDBLOCK",
	tokOpen:             "OPEN",
	tokOpenUnescaped:    "OPEN_UNESCAPED",
	tokCloseUnescaped:   "CLOSE_UNESCAPED",
	tokOpenPartial:      "OPEN_PARTIAL",
	tokOpenSexpr:        "OPEN_SEXPR",
	tokCloseSexpr:       "CLOSE_SEXPR",
	tokID:               "ID",
	tokEquals:           "EQUALS",
	tokOpenBlockParams:  "OPEN_BLOCK_PARAMS",
	tokCloseBlockParams: "CLOSE_BLOCK_PARAMS",
	tokString:           "STRING",
	tokNumber:           "NUMBER",
	tokBoolean:          "BOOLEAN",
	tokUndefined:        "UNDEFINED",
	tokNull:             "NULL",
	tokData:             "DATA",
	tokSep:              "SEP",
	tokInvalid:          "INVALID",

	ntAccept:               "$accept",
	ntRoot:                 "root",
	ntProgram:              "program",
	ntStatements:           "statements",
	ntStatement:            "statement",
	ntContent:              "content",
	ntRawBlock:             "rawBlock",
	ntContents:             "contents",
	ntOpenRawBlock:         "openRawBlock",
	ntBlock:                "block",
	ntOpenBlock:            "openBlock",
	ntOpenInverse:          "openInverse",
	ntOpenInverseChain:     "openInverseChain",
	ntInverseAndProgram:    "inverseAndProgram",
	ntInverseChain:         "inverseChain",
	ntOptInverseChain:      "inverseChain?",
	ntOptInverseAndProgram: "inverseAndProgram?",
	ntCloseBlock:           "closeBlock",
	ntMustache:             "mustache",
	ntPartial:              "partial",
	ntParams:               "params",
	ntParam:                "param",
	ntSexpr:                "sexpr",
	ntOptHash:              "hash?",
	ntHash:                 "hash",
	ntHashSegments:         "hashSegments",
	ntHashSegment:          "hashSegment",
	ntOptBlockParams:       "blockParams?",
	ntBlockParams:          "blockParams",
	ntIDs:                  "ids",
	ntHelperName:           "helperName",
	ntPartialName:          "partialName",
	ntDataName:             "dataName",
	ntPath:                 "path",
	ntPathSegments:         "pathSegments",
}

func (s symbol) String() string {
	if s >= 0 && s < numSymbols {
		return symbolNames[s]
	}
	return "?"
}

func (s symbol) terminal() bool {
	return s < numTerminals
}

// termSet is a set of terminals.
type termSet uint64

func termBit(s symbol) termSet {
	return 1 << uint(s)
}

func (t termSet) has(s symbol) bool {
	return t&termBit(s) != 0
}
