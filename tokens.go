package pathtoregexp

import "fmt"

// lexToken is a single lexical token of a pattern string.
type lexToken struct {
	tType tokenType
	index int
	value string
}

type tokenType uint8

const (
	// tokenChar represents a code point without any special syntactical meaning.
	tokenChar tokenType = iota
	// tokenEscapedChar represents a code point escaped using a backslash like "\<char>".
	tokenEscapedChar
	// tokenModifier represents one of the U+002A (*), U+002B (+) or U+003F (?) code points.
	tokenModifier
	// tokenOpen represents a U+007B ({) code point.
	tokenOpen
	// tokenClose represents a U+007D (}) code point.
	tokenClose
	// tokenName represents a string of the form ":<name>". The value holds the name only.
	tokenName
	// tokenPattern represents a string of the form "(<regular expression>)". The value holds the expression only.
	tokenPattern
	// tokenEnd represents the end of the pattern string.
	tokenEnd
)

func (t tokenType) String() string {
	switch t {
	case tokenChar:
		return "CHAR"
	case tokenEscapedChar:
		return "ESCAPED_CHAR"
	case tokenModifier:
		return "MODIFIER"
	case tokenOpen:
		return "OPEN"
	case tokenClose:
		return "CLOSE"
	case tokenName:
		return "NAME"
	case tokenPattern:
		return "PATTERN"
	case tokenEnd:
		return "END"
	default:
		return fmt.Sprintf("tokenType(%d)", uint8(t))
	}
}
