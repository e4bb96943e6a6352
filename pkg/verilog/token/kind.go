package token

import "strconv"

// Kind is the lexical category of a token.
type Kind int

const (
	Unknown Kind = iota
	EOF

	// Names and literals
	Identifier
	EscapedIdentifier
	SystemTFIdentifier
	MacroIdentifier
	MacroCallId
	MacroCallCloseToEndLine
	PPIdentifier
	PPDefineBody
	DecNumber
	BasedNumberBase
	BasedNumberDigits
	UnBasedNumber
	RealNumber
	TimeLiteral
	StringLiteral
	UDPEntry

	// Comments
	EOLComment
	BlockComment

	keywordBegin
	KwAlways
	KwAlwaysComb
	KwAlwaysFF
	KwAlwaysLatch
	KwAnd
	KwAssign
	KwAutomatic
	KwBegin
	KwBit
	KwCase
	KwCasex
	KwCasez
	KwClass
	KwDefault
	KwDefparam
	KwElse
	KwEnd
	KwEndcase
	KwEndclass
	KwEndfunction
	KwEndgenerate
	KwEndinterface
	KwEndmodule
	KwEndpackage
	KwEndprimitive
	KwEndtable
	KwEndtask
	KwEnum
	KwFor
	KwForever
	KwFunction
	KwGenerate
	KwIf
	KwImport
	KwInitial
	KwInout
	KwInput
	KwInt
	KwInteger
	KwInterface
	KwLocalparam
	KwLogic
	KwMacromodule
	KwModule
	KwNegedge
	KwNew
	KwOr
	KwOutput
	KwPackage
	KwPacked
	KwParameter
	KwPosedge
	KwPrimitive
	KwReal
	KwReg
	KwRepeat
	KwReturn
	KwSigned
	KwString
	KwStruct
	KwTable
	KwTask
	KwTime
	KwType
	KwTypedef
	KwUnsigned
	KwVoid
	KwWhile
	KwWire
	KwXor
	keywordEnd

	preprocessorBegin
	PPDefine
	PPInclude
	PPIfdef
	PPIfndef
	PPElse
	PPElsif
	PPEndif
	PPUndef
	PPTimescale
	PPDefaultNettype
	preprocessorEnd

	operatorBegin
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Semicolon
	Colon
	ScopeRes
	Dot
	Hash
	At
	Apostrophe
	Question
	Assign
	LessEq
	Plus
	Minus
	Star
	Slash
	Percent
	Power
	Ampersand
	Pipe
	Caret
	Tilde
	Bang
	Nand
	Nor
	Xnor
	LogicalAnd
	LogicalOr
	Equal
	NotEqual
	CaseEqual
	CaseNotEqual
	Less
	Greater
	GreaterEq
	ShiftLeft
	ShiftRight
	ArithShiftLeft
	ArithShiftRight
	PlusColon
	MinusColon
	Arrow
	Increment
	Decrement
	PlusAssign
	MinusAssign
	operatorEnd
)

var kindNames = [...]string{
	Unknown:                 "Unknown",
	EOF:                     "EOF",
	Identifier:              "SymbolIdentifier",
	EscapedIdentifier:       "EscapedIdentifier",
	SystemTFIdentifier:      "SystemTFIdentifier",
	MacroIdentifier:         "MacroIdentifier",
	MacroCallId:             "MacroCallId",
	MacroCallCloseToEndLine: "MacroCallCloseToEndLine",
	PPIdentifier:            "PP_Identifier",
	PPDefineBody:            "PP_define_body",
	DecNumber:               "TK_DecNumber",
	BasedNumberBase:         "TK_BasedNumberBase",
	BasedNumberDigits:       "TK_BasedNumberDigits",
	UnBasedNumber:           "TK_UnBasedNumber",
	RealNumber:              "TK_RealTime",
	TimeLiteral:             "TK_TimeLiteral",
	StringLiteral:           "TK_StringLiteral",
	UDPEntry:                "TK_UDPEntry",
	EOLComment:              "TK_EOL_COMMENT",
	BlockComment:            "TK_COMMENT_BLOCK",
	PPDefine:                "PP_define",
	PPInclude:               "PP_include",
	PPIfdef:                 "PP_ifdef",
	PPIfndef:                "PP_ifndef",
	PPElse:                  "PP_else",
	PPElsif:                 "PP_elsif",
	PPEndif:                 "PP_endif",
	PPUndef:                 "PP_undef",
	PPTimescale:             "PP_timescale",
	PPDefaultNettype:        "PP_default_nettype",
	keywordBegin:            "",
	keywordEnd:              "",
	preprocessorBegin:       "",
	preprocessorEnd:         "",
	operatorBegin:           "",
	operatorEnd:             "",
}

// keywords maps reserved words to their kinds.
var keywords = map[string]Kind{
	"always":       KwAlways,
	"always_comb":  KwAlwaysComb,
	"always_ff":    KwAlwaysFF,
	"always_latch": KwAlwaysLatch,
	"and":          KwAnd,
	"assign":       KwAssign,
	"automatic":    KwAutomatic,
	"begin":        KwBegin,
	"bit":          KwBit,
	"case":         KwCase,
	"casex":        KwCasex,
	"casez":        KwCasez,
	"class":        KwClass,
	"default":      KwDefault,
	"defparam":     KwDefparam,
	"else":         KwElse,
	"end":          KwEnd,
	"endcase":      KwEndcase,
	"endclass":     KwEndclass,
	"endfunction":  KwEndfunction,
	"endgenerate":  KwEndgenerate,
	"endinterface": KwEndinterface,
	"endmodule":    KwEndmodule,
	"endpackage":   KwEndpackage,
	"endprimitive": KwEndprimitive,
	"endtable":     KwEndtable,
	"endtask":      KwEndtask,
	"enum":         KwEnum,
	"for":          KwFor,
	"forever":      KwForever,
	"function":     KwFunction,
	"generate":     KwGenerate,
	"if":           KwIf,
	"import":       KwImport,
	"initial":      KwInitial,
	"inout":        KwInout,
	"input":        KwInput,
	"int":          KwInt,
	"integer":      KwInteger,
	"interface":    KwInterface,
	"localparam":   KwLocalparam,
	"logic":        KwLogic,
	"macromodule":  KwMacromodule,
	"module":       KwModule,
	"negedge":      KwNegedge,
	"new":          KwNew,
	"or":           KwOr,
	"output":       KwOutput,
	"package":      KwPackage,
	"packed":       KwPacked,
	"parameter":    KwParameter,
	"posedge":      KwPosedge,
	"primitive":    KwPrimitive,
	"real":         KwReal,
	"reg":          KwReg,
	"repeat":       KwRepeat,
	"return":       KwReturn,
	"signed":       KwSigned,
	"string":       KwString,
	"struct":       KwStruct,
	"table":        KwTable,
	"task":         KwTask,
	"time":         KwTime,
	"type":         KwType,
	"typedef":      KwTypedef,
	"unsigned":     KwUnsigned,
	"void":         KwVoid,
	"while":        KwWhile,
	"wire":         KwWire,
	"xor":          KwXor,
}

var directives = map[string]Kind{
	"`define":          PPDefine,
	"`include":         PPInclude,
	"`ifdef":           PPIfdef,
	"`ifndef":          PPIfndef,
	"`else":            PPElse,
	"`elsif":           PPElsif,
	"`endif":           PPEndif,
	"`undef":           PPUndef,
	"`timescale":       PPTimescale,
	"`default_nettype": PPDefaultNettype,
}

// Operators maps punctuation and operator text to kinds. The scanner matches
// the longest entry first.
var operators = map[string]Kind{
	"(":   LParen,
	")":   RParen,
	"[":   LBracket,
	"]":   RBracket,
	"{":   LBrace,
	"}":   RBrace,
	",":   Comma,
	";":   Semicolon,
	":":   Colon,
	"::":  ScopeRes,
	".":   Dot,
	"#":   Hash,
	"@":   At,
	"'":   Apostrophe,
	"?":   Question,
	"=":   Assign,
	"<=":  LessEq,
	"+":   Plus,
	"-":   Minus,
	"*":   Star,
	"/":   Slash,
	"%":   Percent,
	"**":  Power,
	"&":   Ampersand,
	"|":   Pipe,
	"^":   Caret,
	"~":   Tilde,
	"!":   Bang,
	"~&":  Nand,
	"~|":  Nor,
	"~^":  Xnor,
	"^~":  Xnor,
	"&&":  LogicalAnd,
	"||":  LogicalOr,
	"==":  Equal,
	"!=":  NotEqual,
	"===": CaseEqual,
	"!==": CaseNotEqual,
	"<":   Less,
	">":   Greater,
	">=":  GreaterEq,
	"<<":  ShiftLeft,
	">>":  ShiftRight,
	"<<<": ArithShiftLeft,
	">>>": ArithShiftRight,
	"+:":  PlusColon,
	"-:":  MinusColon,
	"->":  Arrow,
	"++":  Increment,
	"--":  Decrement,
	"+=":  PlusAssign,
	"-=":  MinusAssign,
}

var (
	keywordText  = invert(keywords)
	operatorText = invert(operators)
)

func invert(m map[string]Kind) map[Kind]string {
	out := make(map[Kind]string, len(m))
	for text, kind := range m {
		if prev, ok := out[kind]; ok && prev < text {
			continue
		}
		out[kind] = text
	}
	return out
}

// String returns a stable name for the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if text, ok := keywordText[k]; ok {
		return "TK_" + text
	}
	if text, ok := operatorText[k]; ok {
		return "'" + text + "'"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// LookupKeyword returns the keyword kind of text, or Identifier.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Identifier
}

// LookupDirective returns the preprocessor kind of a backtick word, or
// MacroIdentifier when it names a user macro.
func LookupDirective(text string) Kind {
	if k, ok := directives[text]; ok {
		return k
	}
	return MacroIdentifier
}

// LookupOperator returns the kind of an operator or punctuation string.
func LookupOperator(text string) (Kind, bool) {
	k, ok := operators[text]
	return k, ok
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > keywordBegin && k < keywordEnd }

// IsPreprocessor reports whether k is a preprocessor directive.
func (k Kind) IsPreprocessor() bool { return k > preprocessorBegin && k < preprocessorEnd }

// IsOperator reports whether k is punctuation or an operator.
func (k Kind) IsOperator() bool { return k > operatorBegin && k < operatorEnd }

// IsComment reports whether k is an end-of-line or block comment.
func (k Kind) IsComment() bool { return k == EOLComment || k == BlockComment }

// IsEndKeyword reports whether k closes a construct, like end or endmodule.
func (k Kind) IsEndKeyword() bool {
	switch k {
	case KwEnd, KwEndcase, KwEndclass, KwEndfunction, KwEndgenerate,
		KwEndinterface, KwEndmodule, KwEndpackage, KwEndprimitive,
		KwEndtable, KwEndtask:
		return true
	}
	return false
}

// IsUnaryOperator reports whether k can appear as a unary prefix operator.
func (k Kind) IsUnaryOperator() bool {
	switch k {
	case Plus, Minus, Tilde, Bang, Ampersand, Pipe, Caret, Nand, Nor, Xnor,
		Increment, Decrement:
		return true
	}
	return false
}

// IsCallableKeyword reports whether a keyword may be used like a call,
// as in array methods and constructors.
func (k Kind) IsCallableKeyword() bool {
	switch k {
	case KwAnd, KwOr, KwXor, KwNew:
		return true
	}
	return false
}
