package pathtoregexp

import "github.com/dlclark/regexp2"

const (
	// DefaultDelimiter lists the code points a default parameter never matches.
	DefaultDelimiter = "/#?"
	// DefaultPrefixes lists the code points automatically treated as a parameter prefix.
	DefaultPrefixes = "./"
)

// EncodeFunc transforms a value before it is written in a path.
// key is nil when the value is literal pattern text.
type EncodeFunc func(value string, key *Key) (string, error)

// DecodeFunc transforms a captured value before it is returned by a matcher.
type DecodeFunc func(value string, key *Key) (string, error)

// Options configures parsing, path generation and matching.
// A nil *Options is equivalent to the zero value, which selects all the defaults.
type Options struct {
	// Delimiter holds the characters excluded from the default parameter pattern. Defaults to DefaultDelimiter.
	Delimiter string
	// Prefixes holds the characters that become a parameter's prefix when they directly precede it. Defaults to DefaultPrefixes.
	Prefixes string
	// DisablePrefixes makes every character preceding a parameter literal text, ignoring Prefixes.
	DisablePrefixes bool
	// Sensitive enables case-sensitive regular expressions.
	Sensitive bool

	// Encode is applied to every generated value, and to literal text when building a matcher.
	Encode EncodeFunc
	// DisableValidation skips checking generated values against their parameter's pattern.
	DisableValidation bool

	// Decode is applied to every captured value.
	Decode DecodeFunc
	// Strict disallows an optional trailing delimiter when matching.
	Strict bool
	// Partial drops the end anchor: a path matches when the pattern matches one of its prefixes ending at a delimiter.
	Partial bool
	// EndsWith holds extra characters that may terminate a match.
	EndsWith string
	// NoStart drops the start anchor, so the pattern may match anywhere in a path.
	NoStart bool
}

func (o *Options) delimiter() string {
	if o == nil || o.Delimiter == "" {
		return DefaultDelimiter
	}

	return o.Delimiter
}

func (o *Options) prefixes() string {
	switch {
	case o == nil:
		return DefaultPrefixes
	case o.DisablePrefixes:
		return ""
	case o.Prefixes == "":
		return DefaultPrefixes
	}

	return o.Prefixes
}

// DefaultPattern returns the pattern of parameters declared without a custom one.
func (o *Options) DefaultPattern() string {
	return generateSegmentWildcardRegexp(o.delimiter())
}

// PrefixSet returns the characters that become a parameter's prefix.
func (o *Options) PrefixSet() string {
	return o.prefixes()
}

func (o *Options) regexpOptions() regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if o == nil || !o.Sensitive {
		opts |= regexp2.IgnoreCase
	}

	return opts
}

func (o *Options) encode(value string, key *Key) (string, error) {
	if o == nil || o.Encode == nil {
		return value, nil
	}

	return o.Encode(value, key)
}

func (o *Options) decode(value string, key *Key) (string, error) {
	if o == nil || o.Decode == nil {
		return value, nil
	}

	return o.Decode(value, key)
}

func (o *Options) validate() bool {
	return o == nil || !o.DisableValidation
}
