package pathtoregexp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// MatchResult holds the outcome of a successful match.
type MatchResult struct {
	// Path is the matched part of the input.
	Path string
	// Index is the position, in code points, of the match in the input.
	Index int
	// Params maps key names to a string, or to a []string for repeated keys.
	// Optional keys that did not participate in the match are absent.
	Params map[string]any
}

// MatchFunc matches a path. It returns a nil result when the path doesn't match.
type MatchFunc func(path string) (*MatchResult, error)

// TokensToRegexp returns a regular expression matching paths generated from tokens,
// and the keys of its capturing groups.
func TokensToRegexp(tokens []Token, options *Options) (*regexp2.Regexp, []*Key, error) {
	source, keys, err := tokenList(tokens).generateRegularExpression(options)
	if err != nil {
		return nil, nil, err
	}

	re, err := regexp2.Compile(source, options.regexpOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return re, keys, nil
}

// ToRegexp parses a pattern string and returns the matching regular expression and its keys.
func ToRegexp(pattern string, options *Options) (*regexp2.Regexp, []*Key, error) {
	tokens, err := Parse(pattern, options)
	if err != nil {
		return nil, nil, err
	}

	return TokensToRegexp(tokens, options)
}

// Match parses a pattern string and returns a function matching paths against it.
func Match(pattern string, options *Options) (MatchFunc, error) {
	re, keys, err := ToRegexp(pattern, options)
	if err != nil {
		return nil, err
	}

	return RegexpToFunction(re, keys, options), nil
}

// MustMatch is like Match but panics if the pattern cannot be compiled.
func MustMatch(pattern string, options *Options) MatchFunc {
	f, err := Match(pattern, options)
	if err != nil {
		panic(`pathtoregexp: Match(` + strconv.Quote(pattern) + `): ` + err.Error())
	}

	return f
}

// RegexpToFunction returns a function extracting the values of keys from the capturing groups of re.
// Values of repeated keys are split on the key's prefix and suffix.
func RegexpToFunction(re *regexp2.Regexp, keys []*Key, options *Options) MatchFunc {
	return func(path string) (*MatchResult, error) {
		m, err := re.FindStringMatch(path)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, nil
		}

		params := make(map[string]any, len(keys))

		for i, k := range keys {
			g := m.GroupByNumber(i + 1)
			if g == nil || len(g.Captures) == 0 {
				continue
			}

			if !k.Modifier.Repeat() {
				v, err := options.decode(g.String(), k)
				if err != nil {
					return nil, &ValueError{Key: k, Value: g.String(), Err: ErrInvalidValue, Msg: fmt.Sprintf("decoding %q: %s", k.Name, err)}
				}

				params[k.Name] = v

				continue
			}

			parts := strings.Split(g.String(), k.Suffix+k.Prefix)
			for j, part := range parts {
				v, err := options.decode(part, k)
				if err != nil {
					return nil, &ValueError{Key: k, Value: part, Err: ErrInvalidValue, Msg: fmt.Sprintf("decoding %q: %s", k.Name, err)}
				}

				parts[j] = v
			}

			params[k.Name] = parts
		}

		return &MatchResult{Path: m.String(), Index: m.Index, Params: params}, nil
	}
}
