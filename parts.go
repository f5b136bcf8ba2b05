package pathtoregexp

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	ErrRepeatWithoutAffix = errors.New("repeated parameter must have a prefix or a suffix")
)

// Token is an element of a parsed pattern: either a Literal or a *Key.
type Token interface {
	isToken()
}

// Literal is a fixed text fragment of a pattern.
type Literal string

func (Literal) isToken() {}

// Modifier controls the optionality and repetition of a Key.
type Modifier string

const (
	// ModifierNone means the key is required and occurs once.
	ModifierNone Modifier = ""
	// ModifierOptional is indicated by the U+003F (?) code point.
	ModifierOptional Modifier = "?"
	// ModifierZeroOrMore is indicated by the U+002A (*) code point.
	ModifierZeroOrMore Modifier = "*"
	// ModifierOneOrMore is indicated by the U+002B (+) code point.
	ModifierOneOrMore Modifier = "+"
)

// Optional reports whether the key may be omitted.
func (m Modifier) Optional() bool {
	return m == ModifierOptional || m == ModifierZeroOrMore
}

// Repeat reports whether the key accepts several values.
func (m Modifier) Repeat() bool {
	return m == ModifierZeroOrMore || m == ModifierOneOrMore
}

// Key is a parameter of a pattern.
//
// Named parameters such as ":id" get their name; parameters made only of a
// custom pattern such as "(\d+)" are numbered "0", "1"... in order of appearance.
// A braced group holding only text, like "{.html}?", is a Key with an empty
// Name and an empty Pattern: it matches or produces its text verbatim.
type Key struct {
	Name     string
	Prefix   string
	Suffix   string
	Pattern  string
	Modifier Modifier
	// Positional is set when the key was numbered instead of named: "(\d+)" but not ":5".
	Positional bool
}

func (*Key) isToken() {}


type tokenList []Token

// generateRegularExpression returns the source of a regular expression matching the token list, and the keys of its capturing groups in order.
func (tl tokenList) generateRegularExpression(options *Options) (string, []*Key, error) {
	var result strings.Builder
	keys := make([]*Key, 0, len(tl))

	delimiterRegexp := "[" + escapeRegexpString(options.delimiter()) + "]"
	endsWithRegexp := "$"
	if options != nil && options.EndsWith != "" {
		endsWithRegexp = "[" + escapeRegexpString(options.EndsWith) + "]|$"
	}

	if options == nil || !options.NoStart {
		result.WriteByte('^')
	}

	for _, t := range tl {
		if l, ok := t.(Literal); ok {
			value, err := options.encode(string(l), nil)
			if err != nil {
				return "", nil, err
			}

			result.WriteString(escapeRegexpString(value))

			continue
		}

		k := t.(*Key)

		prefix, err := options.encode(k.Prefix, nil)
		if err != nil {
			return "", nil, err
		}

		suffix, err := options.encode(k.Suffix, nil)
		if err != nil {
			return "", nil, err
		}

		prefix = escapeRegexpString(prefix)
		suffix = escapeRegexpString(suffix)

		if k.Pattern == "" {
			result.WriteString("(?:")
			result.WriteString(prefix)
			result.WriteString(suffix)
			result.WriteByte(')')
			result.WriteString(string(k.Modifier))

			continue
		}

		keys = append(keys, k)

		if prefix == "" && suffix == "" {
			if k.Modifier.Repeat() {
				return "", nil, &ValueError{Key: k, Err: ErrRepeatWithoutAffix, Msg: "cannot repeat " + strconv.Quote(k.Name) + " without a prefix and suffix"}
			}

			result.WriteByte('(')
			result.WriteString(k.Pattern)
			result.WriteByte(')')
			result.WriteString(string(k.Modifier))

			continue
		}

		if !k.Modifier.Repeat() {
			result.WriteString("(?:")
			result.WriteString(prefix)
			result.WriteByte('(')
			result.WriteString(k.Pattern)
			result.WriteByte(')')
			result.WriteString(suffix)
			result.WriteByte(')')
			result.WriteString(string(k.Modifier))

			continue
		}

		result.WriteString("(?:")
		result.WriteString(prefix)
		result.WriteString("((?:")
		result.WriteString(k.Pattern)
		result.WriteString(")(?:")
		result.WriteString(suffix)
		result.WriteString(prefix)
		result.WriteString("(?:")
		result.WriteString(k.Pattern)
		result.WriteString("))*)")
		result.WriteString(suffix)
		result.WriteByte(')')
		if k.Modifier == ModifierZeroOrMore {
			result.WriteByte('?')
		}
	}

	strict := options != nil && options.Strict

	if options == nil || !options.Partial {
		if !strict {
			result.WriteString(delimiterRegexp)
			result.WriteByte('?')
		}

		if endsWithRegexp == "$" {
			result.WriteByte('$')
		} else {
			result.WriteString("(?=")
			result.WriteString(endsWithRegexp)
			result.WriteByte(')')
		}

		return result.String(), keys, nil
	}

	if !strict {
		result.WriteString("(?:")
		result.WriteString(delimiterRegexp)
		result.WriteString("(?=")
		result.WriteString(endsWithRegexp)
		result.WriteString("))?")
	}

	if !tl.endsWithDelimiter(options.delimiter()) {
		result.WriteString("(?=")
		result.WriteString(delimiterRegexp)
		result.WriteByte('|')
		result.WriteString(endsWithRegexp)
		result.WriteByte(')')
	}

	return result.String(), keys, nil
}

// endsWithDelimiter reports whether the token list is empty or ends with a delimiter character.
func (tl tokenList) endsWithDelimiter(delimiter string) bool {
	if len(tl) == 0 {
		return true
	}

	l, ok := tl[len(tl)-1].(Literal)
	if !ok || l == "" {
		return false
	}

	r, _ := utf8.DecodeLastRuneInString(string(l))

	return strings.ContainsRune(delimiter, r)
}

// Format returns a pattern string that parses back into tokens when using the same options.
func Format(tokens []Token, options *Options) string {
	var result strings.Builder

	prefixes := options.prefixes()
	segmentWildcard := generateSegmentWildcardRegexp(options.delimiter())

	for index, t := range tokens {
		if l, ok := t.(Literal); ok {
			result.WriteString(escapePatternString(string(l)))

			continue
		}

		k := t.(*Key)

		if k.Name == "" {
			result.WriteByte('{')
			result.WriteString(escapePatternString(k.Prefix))
			result.WriteString(escapePatternString(k.Suffix))
			result.WriteByte('}')
			result.WriteString(string(k.Modifier))

			continue
		}

		customName := !k.Positional
		needGrouping := k.Suffix != "" || (k.Prefix != "" && (utf8.RuneCountInString(k.Prefix) != 1 || !strings.Contains(prefixes, k.Prefix)))

		if !needGrouping && k.Prefix == "" && index > 0 {
			// The lexer would turn a trailing prefix character into this key's prefix.
			if previous, ok := tokens[index-1].(Literal); ok && previous != "" {
				r, _ := utf8.DecodeLastRuneInString(string(previous))
				needGrouping = strings.ContainsRune(prefixes, r)
			}
		}

		if !needGrouping && customName && index < len(tokens)-1 {
			switch next := tokens[index+1].(type) {
			case Literal:
				r, _ := utf8.DecodeRuneInString(string(next))
				needGrouping = isValidNameCodePoint(r)
			case *Key:
				needGrouping = next.Prefix == "" && next.Positional
			}
		}

		if needGrouping {
			result.WriteByte('{')
		}

		result.WriteString(escapePatternString(k.Prefix))

		if customName {
			result.WriteByte(':')
			result.WriteString(k.Name)
		}

		if !customName || k.Pattern != segmentWildcard {
			result.WriteByte('(')
			result.WriteString(k.Pattern)
			result.WriteByte(')')
		}

		result.WriteString(escapePatternString(k.Suffix))

		if needGrouping {
			result.WriteByte('}')
		}

		result.WriteString(string(k.Modifier))
	}

	return result.String()
}
