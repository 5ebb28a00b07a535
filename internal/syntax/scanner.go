package syntax

import (
	"fmt"
	"unicode/utf8"
)

// Scanner performs lexical analysis on Swift source code. Unlike a
// compiler scanner it keeps every byte: whitespace and comments come out
// as trivia tokens so the token stream reproduces the source exactly.
type Scanner struct {
	source // embedded character reader

	base int   // byte offset of buf[0] in the enclosing file
	prev Token // previously returned token

	// Current token info
	tokStart int
	tokPos   Pos
	kw       KeywordCategory
	punct    Punct
	err      string
}

// NewScanner creates a Scanner for src.
func NewScanner(filename string, src []byte) *Scanner {
	return newScannerAt(filename, src, 1, 1, 0)
}

// newScannerAt creates a Scanner for a fragment of a file that starts at
// the given line, column and byte offset.
func newScannerAt(filename string, src []byte, line, col uint32, base int) *Scanner {
	return &Scanner{
		source: *newSource(filename, src, line, col),
		base:   base,
	}
}

// Tokenize scans src completely. It never fails: input that cannot be
// recognized becomes an Invalid token and scanning continues after it.
func Tokenize(filename string, src []byte) Tokens {
	return NewScanner(filename, src).All()
}

// All scans the remaining input and returns its tokens.
func (s *Scanner) All() Tokens {
	var toks Tokens
	for {
		tok, ok := s.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Next scans one token. It reports false at end of input.
func (s *Scanner) Next() (Token, bool) {
	if s.ch < 0 {
		return Token{}, false
	}

	s.tokStart = s.start
	s.tokPos = s.pos()
	s.kw, s.punct, s.err = NotKeyword, NoPunct, ""

	var kind Kind
	switch ch := s.ch; {
	case ch == ' ' || ch == '\v':
		s.nextch()
		kind = Space
	case ch == '\t':
		s.nextch()
		kind = Tab
	case ch == '\f':
		s.nextch()
		kind = FormFeed
	case ch == 0:
		s.nextch()
		kind = Null
	case ch == '\r':
		s.nextch()
		kind = CarriageReturn
	case ch == '\n':
		s.nextch()
		kind = LineFeed

	case ch == '/' && s.peek(1) == '/':
		kind = s.lineComment()
	case ch == '/' && s.peek(1) == '*':
		kind = s.blockComment()

	case ch == '"':
		kind = s.stringLit()
	case ch == '`':
		kind = s.backtick()

	case isDigit(ch):
		kind = s.number()
	case ch == '-' && isDigit(s.peek(1)) && !s.leftBound():
		// A negative literal is one token; see DESIGN.md.
		s.nextch()
		kind = s.number()

	case ch == '$':
		kind = s.dollarIdent()
	case isIdentStart(ch):
		kind = s.ident()

	case ch == '.':
		kind = s.dot()
	case isOperatorChar(ch):
		kind = s.operator()

	default:
		if p, ok := singlePuncts[ch]; ok {
			s.nextch()
			s.punct = p
			kind = Punctuator
			break
		}
		if ch == utf8.RuneError {
			s.err = "invalid UTF-8 encoding"
		} else {
			s.err = fmt.Sprintf("unexpected character %q", ch)
		}
		s.nextch()
		kind = Invalid
	}

	tok := Token{
		Kind:    kind,
		Text:    string(s.buf[s.tokStart:s.start]),
		Keyword: s.kw,
		Punct:   s.punct,
		Range:   MakeRange(s.tokPos, s.pos()),
		Offset:  s.base + s.tokStart,
		Err:     s.err,
	}
	s.prev = tok
	return tok, true
}

// leftBound reports whether the character before the current token binds
// to it, i.e. is not whitespace, an opening bracket, or a separator.
func (s *Scanner) leftBound() bool {
	if s.tokStart == 0 {
		return false
	}
	switch s.buf[s.tokStart-1] {
	case ' ', '\t', '\n', '\r', '\f', '\v', 0, '(', '[', '{', ',', ';', ':':
		return false
	case '/':
		// end of a block comment counts as whitespace
		return !(s.tokStart >= 2 && s.buf[s.tokStart-2] == '*')
	}
	return true
}

// afterPeriod reports whether the current token directly follows a '.'
// punctuator, as the digits in x.0.1 do.
func (s *Scanner) afterPeriod() bool {
	return s.prev.Kind == Punctuator && s.prev.Punct == Period &&
		s.prev.Offset+1 == s.base+s.tokStart
}

// ----------------------------------------------------------------------------
// Comments

// lineComment scans "//" up to and including the line break.
func (s *Scanner) lineComment() Kind {
	for s.ch >= 0 && s.ch != '\n' {
		s.nextch()
	}
	if s.ch == '\n' {
		s.nextch()
	}
	return LineComment
}

// blockComment scans a possibly nested "/* ... */" comment.
func (s *Scanner) blockComment() Kind {
	s.nextch()
	s.nextch()
	depth := 1
	for depth > 0 {
		switch {
		case s.ch < 0:
			s.err = "unterminated '/*' comment"
			return Invalid
		case s.ch == '/' && s.peek(1) == '*':
			s.nextch()
			s.nextch()
			depth++
		case s.ch == '*' && s.peek(1) == '/':
			s.nextch()
			s.nextch()
			depth--
		default:
			s.nextch()
		}
	}
	return BlockComment
}

// ----------------------------------------------------------------------------
// Identifiers and keywords

// ident scans an identifier or keyword.
func (s *Scanner) ident() Kind {
	for isIdentContinue(s.ch) {
		s.nextch()
	}
	if cat := LookupKeyword(string(s.buf[s.tokStart:s.start])); cat != NotKeyword {
		s.kw = cat
		return Keyword
	}
	return Identifier
}

// dollarIdent scans $0 or $name.
func (s *Scanner) dollarIdent() Kind {
	s.nextch()
	if !isIdentContinue(s.ch) {
		s.err = "expected identifier after '$'"
		return Invalid
	}
	for isIdentContinue(s.ch) {
		s.nextch()
	}
	return Identifier
}

// backtick scans `name`. A backtick not followed by a complete quoted
// identifier is a lone punctuator.
func (s *Scanner) backtick() Kind {
	s.nextch()
	saved := s.source
	if isIdentStart(s.ch) {
		for isIdentContinue(s.ch) {
			s.nextch()
		}
		if s.ch == '`' {
			s.nextch()
			return BacktickIdentifier
		}
	}
	s.source = saved
	s.punct = Backtick
	return Punctuator
}

// ----------------------------------------------------------------------------
// Numbers

// number scans an integer or floating-point literal starting at a digit.
func (s *Scanner) number() Kind {
	if s.ch == '0' {
		switch s.peek(1) {
		case 'b':
			return s.prefixedInt(BinaryIntLit, isBinaryDigit, "binary")
		case 'o':
			return s.prefixedInt(OctalIntLit, isOctalDigit, "octal")
		case 'x':
			return s.hexNumber()
		}
	}
	return s.decimalNumber()
}

// digits consumes digits accepted by valid and '_' separators.
// It returns the number of actual digits.
func (s *Scanner) digits(valid func(rune) bool) int {
	n := 0
	for valid(s.ch) || s.ch == '_' {
		if s.ch != '_' {
			n++
		}
		s.nextch()
	}
	return n
}

// invalidNumber consumes the rest of a malformed literal.
func (s *Scanner) invalidNumber(format string, args ...interface{}) Kind {
	s.err = fmt.Sprintf(format, args...)
	for isIdentContinue(s.ch) {
		s.nextch()
	}
	return Invalid
}

// checkTail rejects a literal glued to a following identifier character.
func (s *Scanner) checkTail(kind Kind, name string) Kind {
	if isIdentContinue(s.ch) {
		return s.invalidNumber("'%c' is not a valid %s digit in integer literal", s.ch, name)
	}
	return kind
}

func (s *Scanner) prefixedInt(kind Kind, valid func(rune) bool, name string) Kind {
	s.nextch() // 0
	s.nextch() // b, o
	if s.digits(valid) == 0 {
		return s.invalidNumber("expected a digit after integer literal prefix")
	}
	return s.checkTail(kind, name)
}

// hexNumber scans 0x... integers and hexadecimal floats. A hex float must
// carry a 'p' exponent; 0xff.description backs off to an integer.
func (s *Scanner) hexNumber() Kind {
	s.nextch() // 0
	s.nextch() // x
	if s.digits(isHexDigit) == 0 {
		return s.invalidNumber("expected a digit after integer literal prefix")
	}

	kind := HexIntLit
	if s.ch == '.' && !s.afterPeriod() {
		if !isHexDigit(s.peek(1)) {
			return kind
		}
		onDot := s.source
		s.nextch()
		fracStartsWithDigit := isDigit(s.ch)
		s.digits(isHexDigit)
		if lower(s.ch) != 'p' {
			if !fracStartsWithDigit {
				s.source = onDot
				return kind
			}
			return s.invalidNumber("hexadecimal floating point literal must end with an exponent")
		}
		kind = HexFloatLit
	}

	if lower(s.ch) == 'p' {
		s.nextch()
		if s.ch == '+' || s.ch == '-' {
			s.nextch()
		}
		if !isDigit(s.ch) {
			return s.invalidNumber("expected a digit in floating point exponent")
		}
		s.digits(isDigit)
		kind = HexFloatLit
	}
	return s.checkTail(kind, "hexadecimal")
}

// decimalNumber scans decimal integers and floats.
func (s *Scanner) decimalNumber() Kind {
	s.digits(isDigit)

	kind := DecimalIntLit
	if s.ch == '.' && isDigit(s.peek(1)) && !s.afterPeriod() {
		s.nextch()
		s.digits(isDigit)
		kind = DecimalFloatLit
	}

	if lower(s.ch) == 'e' {
		s.nextch()
		if s.ch == '+' || s.ch == '-' {
			s.nextch()
		}
		if !isDigit(s.ch) {
			return s.invalidNumber("expected a digit in floating point exponent")
		}
		s.digits(isDigit)
		kind = DecimalFloatLit
	}
	return s.checkTail(kind, "decimal")
}

// ----------------------------------------------------------------------------
// Strings

// stringLit scans a single-line or multi-line string literal. Escapes are
// left undecoded.
func (s *Scanner) stringLit() Kind {
	multiline := s.peek(1) == '"' && s.peek(2) == '"'
	interpolated, ok := s.scanString(multiline)
	if !ok {
		s.err = "unterminated string literal"
		return Invalid
	}
	if interpolated {
		return InterpolatedStringLit
	}
	return StaticStringLit
}

// scanString consumes a string literal from its opening quote(s).
func (s *Scanner) scanString(multiline bool) (interpolated, terminated bool) {
	s.nextch()
	if multiline {
		s.nextch()
		s.nextch()
	}
	for {
		switch {
		case s.ch < 0:
			return interpolated, false
		case !multiline && (s.ch == '\n' || s.ch == '\r'):
			return interpolated, false
		case s.ch == '\\':
			s.nextch()
			if s.ch == '(' {
				s.nextch()
				interpolated = true
				if !s.scanInterpolation(multiline) {
					return interpolated, false
				}
				continue
			}
			if s.ch >= 0 && (multiline || s.ch != '\n' && s.ch != '\r') {
				s.nextch()
			}
		case s.ch == '"':
			if !multiline {
				s.nextch()
				return interpolated, true
			}
			if s.peek(1) == '"' && s.peek(2) == '"' {
				s.nextch()
				s.nextch()
				s.nextch()
				return interpolated, true
			}
			s.nextch()
		default:
			s.nextch()
		}
	}
}

// scanInterpolation consumes the body of \( ... ) including the closing
// parenthesis, skipping nested parentheses and nested string literals.
func (s *Scanner) scanInterpolation(multiline bool) bool {
	depth := 1
	for {
		switch {
		case s.ch < 0:
			return false
		case !multiline && (s.ch == '\n' || s.ch == '\r'):
			return false
		case s.ch == '(':
			depth++
			s.nextch()
		case s.ch == ')':
			depth--
			s.nextch()
			if depth == 0 {
				return true
			}
		case s.ch == '"':
			nested := s.peek(1) == '"' && s.peek(2) == '"'
			if _, ok := s.scanString(nested); !ok {
				return false
			}
		default:
			s.nextch()
		}
	}
}

// ----------------------------------------------------------------------------
// Operators and punctuation

// dot scans '.' or an operator that starts with a period (..., ..<).
func (s *Scanner) dot() Kind {
	s.nextch()
	n := 1
	for s.ch == '.' || isOperatorChar(s.ch) && !s.commentStart() {
		s.nextch()
		n++
	}
	if n == 1 {
		s.punct = Period
		return Punctuator
	}
	return Operator
}

// operator scans a run of operator characters. A left-bound '!' or '?' is
// always a single postfix punctuator, so foo?.bar and x!= both split.
func (s *Scanner) operator() Kind {
	if (s.ch == '!' || s.ch == '?') && s.leftBound() {
		if s.ch == '!' {
			s.punct = Exclaim
		} else {
			s.punct = Question
		}
		s.nextch()
		return Punctuator
	}

	s.nextch()
	for isOperatorChar(s.ch) && !s.commentStart() {
		s.nextch()
	}
	if p, ok := operatorPuncts[string(s.buf[s.tokStart:s.start])]; ok {
		s.punct = p
		return Punctuator
	}
	return Operator
}

// commentStart reports whether a comment begins at the current character.
func (s *Scanner) commentStart() bool {
	return s.ch == '/' && (s.peek(1) == '/' || s.peek(1) == '*')
}
