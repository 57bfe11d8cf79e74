package cli

import (
	"errors"
	"strings"
	"unicode"
)

var errUnbalancedQuote = errors.New("unbalanced quote")

// splitArgs breaks a command line into words. Whitespace separates words;
// single or double quotes group a span, spaces included, into one word.
// A backslash inside double quotes escapes the next character.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		word    strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			word.WriteRune(r)
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnbalancedQuote
	}
	if inWord {
		args = append(args, word.String())
	}
	return args, nil
}
