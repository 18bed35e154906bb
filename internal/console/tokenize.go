package console

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned by Tokenize for a line with an odd number
// of double quotes.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Tokenize splits line into whitespace-separated arguments. Double quotes
// group words into one argument and are removed; "" yields an empty argument.
func Tokenize(line string) ([]string, error) {
	var (
		tokens   []string
		cur      strings.Builder
		inQuotes bool
		inToken  bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			inToken = true
		case unicode.IsSpace(r) && !inQuotes:
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if inQuotes {
		return nil, ErrUnterminatedQuote
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
