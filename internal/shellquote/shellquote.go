// Package shellquote rejoins argv into a single command line whose
// quoting survives tokenization.
package shellquote

import "strings"

// Join assembles arguments into one input line. Arguments containing
// whitespace, quotes, or nothing at all are double-quoted so the
// tokenizer reconstructs them as single tokens.
func Join(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = QuoteIfNeeded(arg)
	}
	return strings.Join(quoted, " ")
}

// Quote wraps s in double quotes, escaping backslashes and any internal
// double quotes.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// QuoteIfNeeded quotes strings the tokenizer would otherwise split or
// misread. The tokenizer splits bare tokens at '=', so arguments
// containing one are quoted too, except inside a --flag=value binding
// where only the value needs protection.
func QuoteIfNeeded(s string) string {
	if name, value, ok := flagBinding(s); ok {
		if value == "" || strings.ContainsAny(value, " \t\n\"\\=") {
			return name + "=" + Quote(value)
		}
		return s
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"\\=") {
		return Quote(s)
	}
	return s
}

// flagBinding splits an argument of the form --name=value where name
// is a well-formed flag name.
func flagBinding(s string) (name, value string, ok bool) {
	if !strings.HasPrefix(s, "--") {
		return "", "", false
	}
	i := strings.IndexByte(s, '=')
	if i <= 2 {
		return "", "", false
	}
	for _, ch := range s[2:i] {
		if !isFlagNameChar(ch) {
			return "", "", false
		}
	}
	return s[:i], s[i+1:], true
}

func isFlagNameChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}
