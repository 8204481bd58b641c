package command

import "fmt"

// maxPathSegments is the longest command path the grammar admits:
// namespace, resource, action.
const maxPathSegments = 3

// Tree is the parsed form of one command invocation. It is built once by
// Parse and never mutated afterwards.
type Tree struct {
	// Path holds 0 to 3 leading words: namespace, resource, action.
	// An empty path is valid and means "show top-level help".
	Path []string

	// Positionals are unnamed argument values in input order.
	Positionals []string

	// Named maps flag names to their bound values. Repeated flags
	// overwrite earlier bindings (last write wins).
	Named map[string]Value

	// Raw is the original input string the tree was parsed from.
	Raw string
}

// Grammar error codes.
const (
	ErrUnexpectedToken = "UNEXPECTED_TOKEN"
	ErrInvalidAST      = "INVALID_AST"
)

// ParseError reports input that lexed cleanly but does not fit the
// command grammar.
type ParseError struct {
	Code    string
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Pos)
}

// Parse consumes a token sequence into a command tree.
//
// The first run of up to three Word tokens forms the command path. The
// remaining tokens are flags and positional arguments: a Flag followed by
// Equals and a value token binds name=value, a Flag followed directly by a
// non-Flag value token binds the shorthand form, and a Flag followed by
// end-of-input or another Flag is boolean presence. A stray Equals with no
// preceding flag is a grammar error.
func Parse(tokens []Token, raw string) (*Tree, error) {
	tree := &Tree{
		Named: make(map[string]Value),
		Raw:   raw,
	}

	i := 0
	for i < len(tokens) && len(tree.Path) < maxPathSegments && tokens[i].Kind == TokenWord {
		tree.Path = append(tree.Path, tokens[i].Value)
		i++
	}

	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Kind {
		case TokenFlag:
			name := tok.Value
			// --flag = value
			if i+2 < len(tokens) && tokens[i+1].Kind == TokenEquals && isValueToken(tokens[i+2]) {
				tree.Named[name] = valueFromToken(tokens[i+2])
				i += 3
				continue
			}
			// --flag value (shorthand, no equals)
			if i+1 < len(tokens) && isValueToken(tokens[i+1]) {
				tree.Named[name] = valueFromToken(tokens[i+1])
				i += 2
				continue
			}
			// --flag alone, or followed by another flag: presence flag
			tree.Named[name] = Bool(true)
			i++
		case TokenEquals:
			return nil, &ParseError{
				Code:    ErrUnexpectedToken,
				Pos:     tok.Pos,
				Message: "unexpected '=' with no preceding flag",
			}
		default:
			tree.Positionals = append(tree.Positionals, tok.Value)
			i++
		}
	}

	return tree, nil
}

// ParseInput tokenizes and parses raw input in one step.
func ParseInput(raw string) (*Tree, error) {
	tokens, err := Tokenize(raw)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, raw)
}

// isValueToken reports whether tok can serve as a flag's bound value.
func isValueToken(tok Token) bool {
	switch tok.Kind {
	case TokenWord, TokenString, TokenNumber, TokenBoolean:
		return true
	}
	return false
}
