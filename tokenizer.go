package pathtoregexp

import (
	"errors"
	"fmt"

	"golang.org/x/exp/utf8string"
)

// ErrSyntax is wrapped by every error reported while lexing or parsing a pattern string.
var ErrSyntax = errors.New("invalid pattern")

// SyntaxError describes a malformed pattern string.
type SyntaxError struct {
	// Index is the position, in code points, of the offending token.
	Index int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at %d", ErrSyntax, e.Msg, e.Index)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

type tokenizer struct {
	input     *utf8string.String
	tokenList []lexToken
	index     int
	nextIndex int
	codePoint rune
}

// tokenize scans the pattern string left to right and returns its token stream, always terminated by a tokenEnd.
func tokenize(input string) ([]lexToken, error) {
	t := tokenizer{
		input:     utf8string.NewString(input),
		tokenList: make([]lexToken, 0, len(input)+1),
	}

	len := t.input.RuneCount()

	for t.index < len {
		t.seekAndGetNextCodePoint(t.index)

		switch t.codePoint {
		case '*', '+', '?':
			t.addTokenWithDefaultPositionAndLength(tokenModifier)

		case '\\':
			if t.nextIndex >= len {
				return nil, &SyntaxError{Index: t.index, Msg: "trailing escape character"}
			}

			escapedIndex := t.nextIndex
			t.getNextCodePoint()
			t.addTokenWithDefaultLength(tokenEscapedChar, t.nextIndex, escapedIndex)

		case '{':
			t.addTokenWithDefaultPositionAndLength(tokenOpen)

		case '}':
			t.addTokenWithDefaultPositionAndLength(tokenClose)

		case ':':
			nameStart := t.nextIndex
			namePosition := nameStart

			for namePosition < len {
				t.seekAndGetNextCodePoint(namePosition)
				if !isValidNameCodePoint(t.codePoint) {
					break
				}

				namePosition = t.nextIndex
			}

			if namePosition == nameStart {
				return nil, &SyntaxError{Index: t.index, Msg: "missing parameter name"}
			}

			t.addTokenWithDefaultLength(tokenName, namePosition, nameStart)

		case '(':
			if err := t.consumePattern(len); err != nil {
				return nil, err
			}

		default:
			t.addTokenWithDefaultPositionAndLength(tokenChar)
		}
	}

	t.addTokenWithDefaultLength(tokenEnd, t.index, t.index)

	return t.tokenList, nil
}

// consumePattern reads a "(...)" group starting at t.index. Nested groups must be non-capturing.
func (t *tokenizer) consumePattern(len int) error {
	depth := 1
	patternStart := t.nextIndex
	patternPosition := patternStart

	if patternStart < len && t.input.At(patternStart) == '?' {
		return &SyntaxError{Index: patternStart, Msg: `pattern cannot start with "?"`}
	}

Loop:
	for patternPosition < len {
		t.seekAndGetNextCodePoint(patternPosition)

		switch t.codePoint {
		case '\\':
			if t.nextIndex >= len {
				return &SyntaxError{Index: patternPosition, Msg: "trailing escape character in pattern"}
			}

			t.getNextCodePoint()

		case ')':
			depth--
			if depth == 0 {
				patternPosition = t.nextIndex
				break Loop
			}

		case '(':
			depth++

			if t.nextIndex >= len || t.input.At(t.nextIndex) != '?' {
				return &SyntaxError{Index: patternPosition, Msg: "capturing groups are not allowed"}
			}
		}

		patternPosition = t.nextIndex
	}

	if depth != 0 {
		return &SyntaxError{Index: t.index, Msg: "unbalanced pattern"}
	}

	patternLength := patternPosition - patternStart - 1
	if patternLength == 0 {
		return &SyntaxError{Index: t.index, Msg: "missing pattern"}
	}

	t.addToken(tokenPattern, patternPosition, patternStart, patternLength)

	return nil
}

func (t *tokenizer) getNextCodePoint() {
	t.codePoint = t.input.At(t.nextIndex)
	t.nextIndex++
}

func (t *tokenizer) seekAndGetNextCodePoint(index int) {
	t.nextIndex = index
	t.getNextCodePoint()
}

func (t *tokenizer) addToken(tType tokenType, nextPosition, valuePosition, valueLength int) {
	t.tokenList = append(t.tokenList, lexToken{
		tType: tType,
		index: t.index,
		value: t.input.Slice(valuePosition, valuePosition+valueLength),
	})
	t.index = nextPosition
}

func (t *tokenizer) addTokenWithDefaultLength(tType tokenType, nextPosition, valuePosition int) {
	t.addToken(tType, nextPosition, valuePosition, nextPosition-valuePosition)
}

func (t *tokenizer) addTokenWithDefaultPositionAndLength(tType tokenType) {
	t.addTokenWithDefaultLength(tType, t.nextIndex, t.index)
}

func isValidNameCodePoint(codePoint rune) bool {
	return codePoint == '_' ||
		(codePoint >= '0' && codePoint <= '9') ||
		(codePoint >= 'A' && codePoint <= 'Z') ||
		(codePoint >= 'a' && codePoint <= 'z')
}
