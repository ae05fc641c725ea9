// Package lexer turns tagl source text into tokens. It never fails: characters
// it does not recognise are dropped.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
)

// Options tunes lexing behaviour.
type Options struct {
	// WordBoundedKeywords classifies `is` and `is not` only as whole words.
	// By default an `i` followed by `s` starts an equality token even inside a
	// longer identifier, e.g. `isValid` lexes as `is` followed by `Valid`.
	WordBoundedKeywords bool
}

// Lexer scans a source string one character at a time.
type Lexer struct {
	src  []rune
	pos  int
	line int
	col  int
	opts Options
}

// New returns a lexer positioned at the start of source.
func New(source string, opts Options) *Lexer {
	return &Lexer{src: []rune(source), line: 1, col: 1, opts: opts}
}

// Lex tokenizes source with default options.
func Lex(source string) []Token {
	return LexWithOptions(source, Options{})
}

// LexWithOptions tokenizes source. The result always ends with an EOF token.
func LexWithOptions(source string, opts Options) []Token {
	return New(source, opts).Tokenize()
}

// Tokenize consumes the remaining input.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens
		}
	}
}

// NextToken returns the next token, or EOF at end of input.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		line, col := l.line, l.col
		c, ok := l.current()
		if !ok {
			return Token{Kind: EOF, Line: line, Column: col}
		}

		if c == '/' && l.peekIs('/') {
			return Token{Kind: Comment, Text: l.readComment(), Line: line, Column: col}
		}

		if kind, single := symbols[c]; single {
			l.advance()
			return Token{Kind: kind, Line: line, Column: col}
		}

		switch {
		case c == 'i' && !l.opts.WordBoundedKeywords:
			tok := l.readLeadingI()
			tok.Line, tok.Column = line, col
			return tok
		case unicode.IsLetter(c):
			tok := l.readWord()
			tok.Line, tok.Column = line, col
			return tok
		case isDigit(c):
			return Token{Kind: IntegerLiteral, Int: l.readNumber(), Line: line, Column: col}
		}

		// unrecognised character
		l.advance()
	}
}

var symbols = map[rune]Kind{
	'[': LeftBracket,
	']': RightBracket,
	'{': LeftBrace,
	'}': RightBrace,
	'(': LeftParen,
	')': RightParen,
	':': Colon,
	',': Comma,
}

func (l *Lexer) current() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) currentIs(r rune) bool {
	c, ok := l.current()
	return ok && c == r
}

func (l *Lexer) peekIs(r rune) bool {
	return l.pos+1 < len(l.src) && l.src[l.pos+1] == r
}

func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		return
	}
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) skipWhitespace() {
	for {
		c, ok := l.current()
		if !ok || !unicode.IsSpace(c) {
			return
		}
		l.advance()
	}
}

func (l *Lexer) readComment() string {
	l.advance()
	l.advance()
	var b strings.Builder
	for {
		c, ok := l.current()
		if !ok || c == '\n' || c == '\r' {
			break
		}
		b.WriteRune(c)
		l.advance()
	}
	return strings.TrimSpace(b.String())
}

func (l *Lexer) readIdentifier() string {
	var b strings.Builder
	for {
		c, ok := l.current()
		if !ok || !isIdentPart(c) {
			return b.String()
		}
		b.WriteRune(c)
		l.advance()
	}
}

func (l *Lexer) readNumber() int64 {
	var b strings.Builder
	for {
		c, ok := l.current()
		if !ok || !isDigit(c) {
			break
		}
		b.WriteRune(c)
		l.advance()
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// readParenthesizedBody consumes `(raw text)` and returns the raw text. There is
// no escaping and no nesting; an unterminated body runs to end of input.
func (l *Lexer) readParenthesizedBody() string {
	l.advance()
	var b strings.Builder
	for {
		c, ok := l.current()
		if !ok {
			break
		}
		l.advance()
		if c == ')' {
			break
		}
		b.WriteRune(c)
	}
	return b.String()
}

// readWord scans an identifier and classifies it, capturing String(...) and
// Integer(...) literal bodies.
func (l *Lexer) readWord() Token {
	word := l.readIdentifier()

	if l.currentIs('(') {
		switch word {
		case "String":
			return Token{Kind: StringLiteral, Text: l.readParenthesizedBody()}
		case "Integer":
			n, err := strconv.ParseInt(l.readParenthesizedBody(), 10, 64)
			if err != nil {
				n = 0
			}
			return Token{Kind: IntegerLiteral, Int: n}
		}
	}

	if l.opts.WordBoundedKeywords && word == "is" {
		return l.classifyIs()
	}
	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind}
	}
	return Token{Kind: Identifier, Text: word}
}

// readLeadingI is the character-level matcher for `is` and `is not`. It
// commits as soon as the characters match, without a word boundary, and
// consumes partial matches of " not".
func (l *Lexer) readLeadingI() Token {
	l.advance()
	if l.currentIs('s') {
		l.advance()
		for _, r := range " not" {
			if !l.currentIs(r) {
				return Token{Kind: Equals}
			}
			l.advance()
		}
		return Token{Kind: NotEquals}
	}

	word := "i" + l.readIdentifier()
	if word == "if" {
		return Token{Kind: If}
	}
	return Token{Kind: Identifier, Text: word}
}

// classifyIs decides between `is` and `is not` after the whole word `is` was
// read, looking ahead over whitespace for the whole word `not`.
func (l *Lexer) classifyIs() Token {
	savePos, saveLine, saveCol := l.pos, l.line, l.col
	l.skipWhitespace()
	if l.pos > savePos && l.currentIs('n') {
		if l.readIdentifier() == "not" {
			return Token{Kind: NotEquals}
		}
	}
	l.pos, l.line, l.col = savePos, saveLine, saveCol
	return Token{Kind: Equals}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsNumber(c) || c == '_'
}
