package manifest

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dunglas/go-pathtoregexp"
)

// spreadPattern is the pattern of spread parameters, which match across segments.
const spreadPattern = ".*"

// SegmentsToTokens converts pre-parsed segments to tokens without going through a pattern string.
//
// Every segment starts with "/". A dynamic part takes the preceding character as its
// prefix when it is one of options' prefixes, like Parse does. A spread part such as
// "...path" becomes an optional parameter matching any text, slashes included.
func SegmentsToTokens(segments [][]Part, options *pathtoregexp.Options) ([]pathtoregexp.Token, error) {
	prefixes := options.PrefixSet()

	var (
		tokens  []pathtoregexp.Token
		pending strings.Builder
		names   = make(map[string]struct{})
	)

	for i, segment := range segments {
		if len(segment) == 0 {
			return nil, fmt.Errorf("segment %d is empty", i)
		}

		pending.WriteByte('/')

		for _, part := range segment {
			if !part.Dynamic {
				pending.WriteString(part.Content)

				continue
			}

			key := &pathtoregexp.Key{Name: part.Content}
			if part.Spread {
				key.Name = strings.TrimPrefix(part.Content, "...")
				key.Pattern = spreadPattern
				key.Modifier = pathtoregexp.ModifierOptional
			}

			if err := validateName(key.Name); err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}

			if _, ok := names[key.Name]; ok {
				return nil, fmt.Errorf("segment %d: %w: %q", i, pathtoregexp.ErrDuplicateName, key.Name)
			}
			names[key.Name] = struct{}{}

			if key.Pattern == "" {
				key.Pattern = options.DefaultPattern()
			}

			text := pending.String()
			pending.Reset()

			if r, size := utf8.DecodeLastRuneInString(text); size > 0 && strings.ContainsRune(prefixes, r) {
				key.Prefix = text[len(text)-size:]
				text = text[:len(text)-size]
			}

			if text != "" {
				tokens = append(tokens, pathtoregexp.Literal(text))
			}

			tokens = append(tokens, key)
		}
	}

	if pending.Len() > 0 {
		tokens = append(tokens, pathtoregexp.Literal(pending.String()))
	}

	return tokens, nil
}

func validateName(name string) error {
	if name == "" {
		return errors.New("missing parameter name")
	}

	for _, r := range name {
		if r != '_' && (r < '0' || r > '9') && (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return fmt.Errorf("invalid parameter name %q", name)
		}
	}

	return nil
}

func appendLiteral(tokens []pathtoregexp.Token, text string) []pathtoregexp.Token {
	result := make([]pathtoregexp.Token, len(tokens), len(tokens)+1)
	copy(result, tokens)

	if n := len(result); n > 0 {
		if l, ok := result[n-1].(pathtoregexp.Literal); ok {
			result[n-1] = l + pathtoregexp.Literal(text)

			return result
		}
	}

	return append(result, pathtoregexp.Literal(text))
}
