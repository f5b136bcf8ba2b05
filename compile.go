package pathtoregexp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	ErrMissingValue     = errors.New("missing value")
	ErrUnexpectedRepeat = errors.New("unexpected sequence")
	ErrExpectedRepeat   = errors.New("expected sequence")
	ErrEmptyValue       = errors.New("empty sequence")
	ErrInvalidValue     = errors.New("invalid value")
	ErrUnsupportedValue = errors.New("unsupported value type")
)

// ValueError reports a value that cannot be substituted for a key, or a key that cannot be used.
type ValueError struct {
	Key   *Key
	Value string
	Err   error
	Msg   string
}

func (e *ValueError) Error() string {
	return e.Err.Error() + ": " + e.Msg
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// PathFunc builds a path by substituting data values for the keys of a pattern.
//
// Values can be strings, numbers, booleans, fmt.Stringer implementations, or
// slices and arrays of those for repeated keys.
type PathFunc func(data map[string]any) (string, error)

// Compile parses a pattern string and returns a function generating paths from it.
// Malformed patterns are reported here, never when the returned function is called.
func Compile(pattern string, options *Options) (PathFunc, error) {
	tokens, err := Parse(pattern, options)
	if err != nil {
		return nil, err
	}

	return TokensToFunction(tokens, options)
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string, options *Options) PathFunc {
	f, err := Compile(pattern, options)
	if err != nil {
		panic(`pathtoregexp: Compile(` + strconv.Quote(pattern) + `): ` + err.Error())
	}

	return f
}

// TokensToFunction returns a function generating paths from parsed tokens.
// The returned function holds no mutable state and is safe for concurrent use.
func TokensToFunction(tokens []Token, options *Options) (PathFunc, error) {
	validators := make([]*regexp2.Regexp, len(tokens))

	for i, t := range tokens {
		k, ok := t.(*Key)
		if !ok || k.Pattern == "" {
			continue
		}

		re, err := regexp2.Compile("^(?:"+k.Pattern+")$", options.regexpOptions())
		if err != nil {
			return nil, fmt.Errorf("%w: pattern of %q: %w", ErrSyntax, k.Name, err)
		}

		validators[i] = re
	}

	validate := options.validate()

	return func(data map[string]any) (string, error) {
		var path strings.Builder

		for i, t := range tokens {
			if l, ok := t.(Literal); ok {
				path.WriteString(string(l))

				continue
			}

			k := t.(*Key)

			if k.Name == "" {
				if !k.Modifier.Optional() {
					path.WriteString(k.Prefix)
					path.WriteString(k.Suffix)
				}

				continue
			}

			values, repeated, err := stringValues(data[k.Name])
			if err != nil {
				return "", &ValueError{Key: k, Err: ErrUnsupportedValue, Msg: fmt.Sprintf("%q: %s", k.Name, err)}
			}

			if values == nil {
				if k.Modifier.Optional() {
					continue
				}

				expected := "a string"
				if k.Modifier.Repeat() {
					expected = "a sequence"
				}

				return "", &ValueError{Key: k, Err: ErrMissingValue, Msg: fmt.Sprintf("expected %q to be %s", k.Name, expected)}
			}

			if repeated != k.Modifier.Repeat() {
				if repeated {
					return "", &ValueError{Key: k, Err: ErrUnexpectedRepeat, Msg: fmt.Sprintf("expected %q to not repeat, but got a sequence", k.Name)}
				}

				return "", &ValueError{Key: k, Value: values[0], Err: ErrExpectedRepeat, Msg: fmt.Sprintf("expected %q to be a sequence", k.Name)}
			}

			if len(values) == 0 {
				if k.Modifier.Optional() {
					continue
				}

				return "", &ValueError{Key: k, Err: ErrEmptyValue, Msg: fmt.Sprintf("expected %q to not be empty", k.Name)}
			}

			for _, v := range values {
				segment, err := options.encode(v, k)
				if err != nil {
					return "", &ValueError{Key: k, Value: v, Err: ErrInvalidValue, Msg: fmt.Sprintf("encoding %q: %s", k.Name, err)}
				}

				if validate {
					matched, err := validators[i].MatchString(segment)
					if err != nil {
						return "", &ValueError{Key: k, Value: segment, Err: ErrInvalidValue, Msg: fmt.Sprintf("validating %q: %s", k.Name, err)}
					}

					if !matched {
						all := ""
						if repeated {
							all = "all "
						}

						return "", &ValueError{Key: k, Value: segment, Err: ErrInvalidValue, Msg: fmt.Sprintf("expected %s%q to match %q, but got %q", all, k.Name, k.Pattern, segment)}
					}
				}

				path.WriteString(k.Prefix)
				path.WriteString(segment)
				path.WriteString(k.Suffix)
			}
		}

		return path.String(), nil
	}, nil
}
