// Package syntax implements the lexer and parser for Swift source code.
package syntax

import (
	"fmt"
	"strings"
)

// Kind classifies a lexical token.
type Kind uint8

const (
	// Trivia
	Space          Kind = iota // ' ' (and vertical tab)
	Tab                        // '\t'
	FormFeed                   // '\f'
	Null                       // '\x00'
	CarriageReturn             // '\r'
	LineFeed                   // '\n'
	LineComment                // "// ...\n"
	BlockComment               // "/* ... */", nesting

	// Names
	Identifier         // foo, $0
	BacktickIdentifier // `class`
	Keyword            // see KeywordCategory

	// Integer literals
	BinaryIntLit  // 0b1010
	OctalIntLit   // 0o17
	DecimalIntLit // 42, -1_000
	HexIntLit     // 0xFF

	// Floating-point literals
	DecimalFloatLit // 3.14, 1e10
	HexFloatLit     // 0x1.8p3

	// String literals
	StaticStringLit       // "abc"
	InterpolatedStringLit // "a\(b)c"

	Punctuator // see Punct
	Operator   // +, ==, ..., <>
	Invalid    // unrecognized or unterminated input

	kindCount
)

var kindNames = [...]string{
	Space:                 "Space",
	Tab:                   "Tab",
	FormFeed:              "FormFeed",
	Null:                  "Null",
	CarriageReturn:        "CarriageReturn",
	LineFeed:              "LineFeed",
	LineComment:           "LineComment",
	BlockComment:          "BlockComment",
	Identifier:            "Identifier",
	BacktickIdentifier:    "BacktickIdentifier",
	Keyword:               "Keyword",
	BinaryIntLit:          "BinaryIntLit",
	OctalIntLit:           "OctalIntLit",
	DecimalIntLit:         "DecimalIntLit",
	HexIntLit:             "HexIntLit",
	DecimalFloatLit:       "DecimalFloatLit",
	HexFloatLit:           "HexFloatLit",
	StaticStringLit:       "StaticStringLit",
	InterpolatedStringLit: "InterpolatedStringLit",
	Punctuator:            "Punctuator",
	Operator:              "Operator",
	Invalid:               "Invalid",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	return k <= BlockComment
}

// IsLineBreak reports whether k is a line terminator.
func (k Kind) IsLineBreak() bool {
	return k == CarriageReturn || k == LineFeed
}

// IsIntLit reports whether k is one of the integer literal kinds.
func (k Kind) IsIntLit() bool {
	return k >= BinaryIntLit && k <= HexIntLit
}

// IsFloatLit reports whether k is one of the floating-point literal kinds.
func (k Kind) IsFloatLit() bool {
	return k == DecimalFloatLit || k == HexFloatLit
}

// IsStringLit reports whether k is a string literal kind.
func (k Kind) IsStringLit() bool {
	return k == StaticStringLit || k == InterpolatedStringLit
}

// IsLiteral reports whether k is a numeric or string literal.
func (k Kind) IsLiteral() bool {
	return k >= BinaryIntLit && k <= InterpolatedStringLit
}

// KeywordCategory tells which keyword table a keyword came from.
type KeywordCategory uint8

const (
	NotKeyword KeywordCategory = iota
	PatternKeyword
	DeclarationKeyword
	StatementKeyword
	ExpressionKeyword
	ContextualKeyword
)

var keywordCategoryNames = [...]string{
	NotKeyword:         "none",
	PatternKeyword:     "pattern",
	DeclarationKeyword: "declaration",
	StatementKeyword:   "statement",
	ExpressionKeyword:  "expression",
	ContextualKeyword:  "contextual",
}

func (c KeywordCategory) String() string {
	if int(c) < len(keywordCategoryNames) {
		return keywordCategoryNames[c]
	}
	return fmt.Sprintf("KeywordCategory(%d)", c)
}

// Punct identifies a punctuator.
type Punct uint8

const (
	NoPunct      Punct = iota
	LeftParen          // (
	RightParen         // )
	LeftBrace          // {
	RightBrace         // }
	LeftBracket        // [
	RightBracket       // ]
	Period             // .
	Comma              // ,
	Colon              // :
	Semicolon          // ;
	Equal              // =
	At                 // @
	Pound              // #
	Amp                // &
	Arrow              // ->
	Backtick           // `
	Backslash          // \
	Exclaim            // !
	Question           // ?

	punctCount
)

var punctNames = [...]string{
	NoPunct:      "",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	LeftBracket:  "[",
	RightBracket: "]",
	Period:       ".",
	Comma:        ",",
	Colon:        ":",
	Semicolon:    ";",
	Equal:        "=",
	At:           "@",
	Pound:        "#",
	Amp:          "&",
	Arrow:        "->",
	Backtick:     "`",
	Backslash:    "\\",
	Exclaim:      "!",
	Question:     "?",
}

// String returns the source text of the punctuator.
func (p Punct) String() string {
	if p < punctCount {
		return punctNames[p]
	}
	return fmt.Sprintf("Punct(%d)", p)
}

// singlePuncts maps one-character punctuators that never combine with
// neighbouring characters.
var singlePuncts = map[rune]Punct{
	'(':  LeftParen,
	')':  RightParen,
	'{':  LeftBrace,
	'}':  RightBrace,
	'[':  LeftBracket,
	']':  RightBracket,
	',':  Comma,
	':':  Colon,
	';':  Semicolon,
	'@':  At,
	'#':  Pound,
	'\\': Backslash,
	'`':  Backtick,
}

// operatorPuncts maps operator-character runs that are reserved punctuation.
var operatorPuncts = map[string]Punct{
	"=":  Equal,
	"&":  Amp,
	"->": Arrow,
	"!":  Exclaim,
	"?":  Question,
}

// Token is one lexical token. Text is the exact source text of the token,
// with escapes and separators left as written.
type Token struct {
	Kind    Kind
	Text    string
	Keyword KeywordCategory // when Kind == Keyword
	Punct   Punct           // when Kind == Punctuator
	Range   Range
	Offset  int    // byte offset of Text in the source
	Err     string // reason, when Kind == Invalid
}

// Is reports whether t is the punctuator p.
func (t Token) Is(p Punct) bool {
	return t.Kind == Punctuator && t.Punct == p
}

// IsKeyword reports whether t is the keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == Keyword && t.Text == kw
}

// IsOperator reports whether t is the free-form operator op.
func (t Token) IsOperator(op string) bool {
	return t.Kind == Operator && t.Text == op
}

// String returns a short description of the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case Keyword:
		return fmt.Sprintf("Keyword(%s, %s)", t.Text, t.Keyword)
	case Punctuator:
		return fmt.Sprintf("Punctuator(%s)", t.Text)
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Tokens is the ordered token stream produced by one Tokenize call.
type Tokens []Token

// String concatenates the text of all tokens, reproducing the source.
func (ts Tokens) String() string {
	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Significant returns the tokens that are not trivia.
func (ts Tokens) Significant() Tokens {
	var out Tokens
	for _, t := range ts {
		if !t.Kind.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}

// Keyword tables. A bare identifier is looked up in each; the first hit
// decides the keyword category.
var (
	patternKeywords = map[string]bool{
		"_": true,
	}

	declarationKeywords = map[string]bool{
		"associatedtype":  true,
		"class":           true,
		"deinit":          true,
		"enum":            true,
		"extension":       true,
		"fileprivate":     true,
		"func":            true,
		"import":          true,
		"init":            true,
		"inout":           true,
		"internal":        true,
		"let":             true,
		"open":            true,
		"operator":        true,
		"precedencegroup": true,
		"private":         true,
		"protocol":        true,
		"public":          true,
		"static":          true,
		"struct":          true,
		"subscript":       true,
		"typealias":       true,
		"var":             true,
	}

	statementKeywords = map[string]bool{
		"break":       true,
		"case":        true,
		"continue":    true,
		"default":     true,
		"defer":       true,
		"do":          true,
		"else":        true,
		"fallthrough": true,
		"for":         true,
		"guard":       true,
		"if":          true,
		"in":          true,
		"repeat":      true,
		"return":      true,
		"switch":      true,
		"where":       true,
		"while":       true,
	}

	expressionKeywords = map[string]bool{
		"as":       true,
		"Any":      true,
		"catch":    true,
		"false":    true,
		"is":       true,
		"nil":      true,
		"rethrows": true,
		"super":    true,
		"self":     true,
		"Self":     true,
		"throw":    true,
		"throws":   true,
		"true":     true,
		"try":      true,
	}

	contextualKeywords = map[string]bool{
		"associativity": true,
		"assignment":    true,
		"convenience":   true,
		"didSet":        true,
		"dynamic":       true,
		"final":         true,
		"get":           true,
		"higherThan":    true,
		"indirect":      true,
		"infix":         true,
		"lazy":          true,
		"left":          true,
		"lowerThan":     true,
		"mutating":      true,
		"none":          true,
		"nonmutating":   true,
		"optional":      true,
		"override":      true,
		"postfix":       true,
		"prefix":        true,
		"Protocol":      true,
		"required":      true,
		"right":         true,
		"set":           true,
		"Type":          true,
		"unowned":       true,
		"weak":          true,
		"willSet":       true,
	}
)

// LookupKeyword returns the keyword category of ident, or NotKeyword.
func LookupKeyword(ident string) KeywordCategory {
	switch {
	case patternKeywords[ident]:
		return PatternKeyword
	case declarationKeywords[ident]:
		return DeclarationKeyword
	case statementKeywords[ident]:
		return StatementKeyword
	case expressionKeywords[ident]:
		return ExpressionKeyword
	case contextualKeywords[ident]:
		return ContextualKeyword
	}
	return NotKeyword
}
