// Package command implements the Loom command pipeline front end:
// tokenizing raw input, parsing it into a command tree, and the tagged
// value type shared with validation.
package command

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenKind represents the lexical class of a token.
type TokenKind int

const (
	TokenWord    TokenKind = iota // bare word: command path segments, positional args
	TokenFlag                     // --name
	TokenEquals                   // = binding a flag to its value
	TokenString                   // "quoted span"
	TokenNumber                   // decimal literal
	TokenBoolean                  // true / false (case-insensitive)
)

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "word"
	case TokenFlag:
		return "flag"
	case TokenEquals:
		return "equals"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenBoolean:
		return "boolean"
	}
	return "unknown"
}

// Token is a single lexical token. Pos is the byte offset of the token's
// first character in the raw input.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

// Lexical error codes.
const (
	ErrUnterminatedString = "UNTERMINATED_STRING"
	ErrIllegalCharacter   = "ILLEGAL_CHARACTER"
)

// LexError reports malformed input detected during tokenization.
type LexError struct {
	Code    string
	Pos     int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Pos)
}

// Tokenize splits raw command-line input into an ordered token sequence.
// It is total and deterministic: the same input always yields the same
// tokens or the same error.
func Tokenize(raw string) ([]Token, error) {
	l := &lexer{input: raw}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return tokens, nil
		}
		tokens = append(tokens, *tok)
	}
}

type lexer struct {
	input string
	pos   int
}

// next returns the next token, or nil at end of input.
func (l *lexer) next() (*Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return nil, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case ch == '"':
		return l.scanString()
	case ch == '=':
		l.pos++
		return &Token{Kind: TokenEquals, Value: "=", Pos: start}, nil
	case ch == '-' && strings.HasPrefix(l.input[l.pos:], "--"):
		return l.scanFlag()
	default:
		return l.scanBare()
	}
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

// scanString consumes a double-quoted span, unescaping \" and \\.
func (l *lexer) scanString() (*Token, error) {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.pos+1 < len(l.input) {
			next := l.input[l.pos+1]
			if next == '"' || next == '\\' {
				sb.WriteByte(next)
				l.pos += 2
				continue
			}
		}
		if ch == '"' {
			l.pos++
			return &Token{Kind: TokenString, Value: sb.String(), Pos: start}, nil
		}
		sb.WriteByte(ch)
		l.pos++
	}

	return nil, &LexError{
		Code:    ErrUnterminatedString,
		Pos:     start,
		Message: "unterminated quoted string",
	}
}

// scanFlag consumes a --name token. The value is the text after the
// dashes up to '=' or whitespace.
func (l *lexer) scanFlag() (*Token, error) {
	start := l.pos
	l.pos += 2 // dashes

	nameStart := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '=' || unicode.IsSpace(rune(ch)) {
			break
		}
		if !isFlagNameChar(ch) {
			return nil, &LexError{
				Code:    ErrIllegalCharacter,
				Pos:     l.pos,
				Message: fmt.Sprintf("illegal character %q in flag name", ch),
			}
		}
		l.pos++
	}

	return &Token{Kind: TokenFlag, Value: l.input[nameStart:l.pos], Pos: start}, nil
}

// scanBare consumes a run of non-space, non-quote, non-equals characters
// and classifies it as Number, Boolean, or Word.
func (l *lexer) scanBare() (*Token, error) {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsSpace(rune(ch)) || ch == '"' || ch == '=' {
			break
		}
		l.pos++
	}
	text := l.input[start:l.pos]

	switch {
	case isNumericLiteral(text):
		return &Token{Kind: TokenNumber, Value: text, Pos: start}, nil
	case strings.EqualFold(text, "true") || strings.EqualFold(text, "false"):
		return &Token{Kind: TokenBoolean, Value: strings.ToLower(text), Pos: start}, nil
	default:
		return &Token{Kind: TokenWord, Value: text, Pos: start}, nil
	}
}

func isFlagNameChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}

// isNumericLiteral reports whether text is a plain decimal literal with an
// optional sign and fraction. Exponent forms like "1e5" are deliberately
// not numbers; they lex as words.
func isNumericLiteral(text string) bool {
	if text == "" {
		return false
	}
	i := 0
	if text[0] == '-' {
		i++
	}
	digits := 0
	for ; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
		digits++
	}
	if digits == 0 {
		return false
	}
	if i == len(text) {
		return true
	}
	if text[i] != '.' {
		return false
	}
	i++
	frac := 0
	for ; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
		frac++
	}
	return frac > 0 && i == len(text)
}
