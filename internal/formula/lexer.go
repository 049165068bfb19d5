package formula

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokComma
	tokLT
	tokLE
	tokGT
	tokGE
	tokEQ
	tokNE
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits an expression into tokens. Identifiers may contain dotted
// segments ("CONFIG.Monthly_Rent") since the language has no member access.
func lex(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			text := string(runes[start:i])
			if strings.Count(text, ".") > 1 {
				return nil, fmt.Errorf("invalid number %q at position %d", text, start)
			}
			tokens = append(tokens, token{tokNumber, text, start})
		case r == '\'' || r == '"':
			quote := r
			start := i
			i++
			var sb strings.Builder
			for i < len(runes) && runes[i] != quote {
				sb.WriteRune(runes[i])
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("unterminated string at position %d", start)
			}
			i++
			tokens = append(tokens, token{tokString, sb.String(), start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				// A dot continues the identifier only when followed by a
				// letter or underscore.
				if runes[i] == '.' {
					if i+1 >= len(runes) || !(unicode.IsLetter(runes[i+1]) || runes[i+1] == '_') {
						break
					}
				}
				i++
			}
			tokens = append(tokens, token{tokIdent, string(runes[start:i]), start})
		default:
			start := i
			kind, width, err := lexOperator(runes[i:])
			if err != nil {
				return nil, fmt.Errorf("%w at position %d", err, start)
			}
			i += width
			tokens = append(tokens, token{kind, string(runes[start:i]), start})
		}
	}

	tokens = append(tokens, token{tokEOF, "", len(runes)})
	return tokens, nil
}

func lexOperator(rest []rune) (tokenKind, int, error) {
	two := ""
	if len(rest) >= 2 {
		two = string(rest[:2])
	}
	switch two {
	case "<=":
		return tokLE, 2, nil
	case ">=":
		return tokGE, 2, nil
	case "==":
		return tokEQ, 2, nil
	case "!=":
		return tokNE, 2, nil
	}
	switch rest[0] {
	case '+':
		return tokPlus, 1, nil
	case '-':
		return tokMinus, 1, nil
	case '*':
		return tokStar, 1, nil
	case '/':
		return tokSlash, 1, nil
	case '(':
		return tokLParen, 1, nil
	case ')':
		return tokRParen, 1, nil
	case ',':
		return tokComma, 1, nil
	case '<':
		return tokLT, 1, nil
	case '>':
		return tokGT, 1, nil
	}
	return tokEOF, 0, fmt.Errorf("unexpected character %q", rest[0])
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}
