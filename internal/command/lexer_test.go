package command

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []Token
	}{
		{
			name:  "bare words",
			input: "project list",
			tokens: []Token{
				{Kind: TokenWord, Value: "project", Pos: 0},
				{Kind: TokenWord, Value: "list", Pos: 8},
			},
		},
		{
			name:  "flag with equals",
			input: "--id=abc",
			tokens: []Token{
				{Kind: TokenFlag, Value: "id", Pos: 0},
				{Kind: TokenEquals, Value: "=", Pos: 4},
				{Kind: TokenWord, Value: "abc", Pos: 5},
			},
		},
		{
			name:  "quoted string preserves whitespace",
			input: `--message "hi there"`,
			tokens: []Token{
				{Kind: TokenFlag, Value: "message", Pos: 0},
				{Kind: TokenString, Value: "hi there", Pos: 10},
			},
		},
		{
			name:  "escaped quote inside string",
			input: `"say \"hi\""`,
			tokens: []Token{
				{Kind: TokenString, Value: `say "hi"`, Pos: 0},
			},
		},
		{
			name:  "numbers and booleans",
			input: "42 -3.5 true FALSE",
			tokens: []Token{
				{Kind: TokenNumber, Value: "42", Pos: 0},
				{Kind: TokenNumber, Value: "-3.5", Pos: 3},
				{Kind: TokenBoolean, Value: "true", Pos: 8},
				{Kind: TokenBoolean, Value: "false", Pos: 13},
			},
		},
		{
			name:  "exponent form is a word not a number",
			input: "1e5",
			tokens: []Token{
				{Kind: TokenWord, Value: "1e5", Pos: 0},
			},
		},
		{
			name:  "bare presence flag",
			input: "--all",
			tokens: []Token{
				{Kind: TokenFlag, Value: "all", Pos: 0},
			},
		},
		{
			name:   "empty input",
			input:  "   ",
			tokens: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(tokens, tt.tokens) {
				t.Errorf("Tokenize(%q) = %+v, want %+v", tt.input, tokens, tt.tokens)
			}
		})
	}
}

func TestTokenizeChatSendScenario(t *testing.T) {
	input := `agent chat send --message "hi there" --role user`
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	want := []struct {
		kind  TokenKind
		value string
	}{
		{TokenWord, "agent"},
		{TokenWord, "chat"},
		{TokenWord, "send"},
		{TokenFlag, "message"},
		{TokenString, "hi there"},
		{TokenFlag, "role"},
		{TokenWord, "user"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Value != w.value {
			t.Errorf("token %d = {%v %q}, want {%v %q}", i, tokens[i].Kind, tokens[i].Value, w.kind, w.value)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  string
		pos   int
	}{
		{
			name:  "unterminated string",
			input: `chat send --message "oops`,
			code:  ErrUnterminatedString,
			pos:   20,
		},
		{
			name:  "illegal character in flag name",
			input: "project list --ba$d",
			code:  ErrIllegalCharacter,
			pos:   17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want lex error", tt.input)
			}
			lexErr, ok := err.(*LexError)
			if !ok {
				t.Fatalf("error type = %T, want *LexError", err)
			}
			if lexErr.Code != tt.code {
				t.Errorf("code = %s, want %s", lexErr.Code, tt.code)
			}
			if lexErr.Pos != tt.pos {
				t.Errorf("pos = %d, want %d", lexErr.Pos, tt.pos)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	input := `roadmap view tasks --id r-1 --verbose --limit 10 "extra arg"`
	first, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	second, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize error on second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("tokenization is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
