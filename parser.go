package pathtoregexp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrDuplicateName = errors.New("duplicate parameter name")
)

// Parse parses a pattern string into a list of literals and keys.
//
// A character directly preceding a parameter becomes its prefix when it is one
// of options' prefixes. Braced groups such as "{-:role}?" accept any text as
// prefix and suffix. Consecutive literal characters are coalesced.
func Parse(input string, options *Options) ([]Token, error) {
	tl, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := patternParser{
		tokenList:             tl,
		prefixes:              options.prefixes(),
		segmentWildcardRegexp: generateSegmentWildcardRegexp(options.delimiter()),
	}

	tls := len(tl)

	for p.index < tls {
		charToken := p.tryConsumeToken(tokenChar)
		nameToken := p.tryConsumeToken(tokenName)
		patternToken := p.tryConsumeToken(tokenPattern)

		if nameToken != nil || patternToken != nil {
			prefix := ""
			if charToken != nil {
				prefix = charToken.value
			}

			if prefix != "" && !strings.Contains(p.prefixes, prefix) {
				p.pendingFixedValue += prefix
				prefix = ""
			}

			p.maybeAddPartFromPendingFixedValue()

			if err := p.addPart(prefix, nameToken, patternToken, "", p.tryConsumeModifierToken()); err != nil {
				return nil, err
			}

			continue
		}

		fixedToken := charToken
		if fixedToken == nil {
			fixedToken = p.tryConsumeToken(tokenEscapedChar)
		}
		if fixedToken != nil {
			p.pendingFixedValue += fixedToken.value

			continue
		}

		if openToken := p.tryConsumeToken(tokenOpen); openToken != nil {
			prefix := p.consumeText()
			nameToken := p.tryConsumeToken(tokenName)
			patternToken := p.tryConsumeToken(tokenPattern)
			suffix := p.consumeText()

			if _, err := p.consumeRequiredToken(tokenClose); err != nil {
				return nil, err
			}

			if err := p.addPart(prefix, nameToken, patternToken, suffix, p.tryConsumeModifierToken()); err != nil {
				return nil, err
			}

			continue
		}

		p.maybeAddPartFromPendingFixedValue()

		if _, err := p.consumeRequiredToken(tokenEnd); err != nil {
			return nil, err
		}
	}

	return p.tokens, nil
}

type patternParser struct {
	tokenList             []lexToken
	prefixes              string
	segmentWildcardRegexp string
	tokens                []Token
	pendingFixedValue     string
	index                 int
	nextNumericName       int
}

func (p *patternParser) tryConsumeToken(tType tokenType) *lexToken {
	if p.index >= len(p.tokenList) {
		return nil
	}

	nextToken := p.tokenList[p.index]
	if nextToken.tType != tType {
		return nil
	}

	p.index++

	return &nextToken
}

func (p *patternParser) tryConsumeModifierToken() Modifier {
	if t := p.tryConsumeToken(tokenModifier); t != nil {
		return Modifier(t.value)
	}

	return ModifierNone
}

func (p *patternParser) consumeRequiredToken(tType tokenType) (*lexToken, error) {
	if result := p.tryConsumeToken(tType); result != nil {
		return result, nil
	}

	next := p.tokenList[p.index]

	return nil, &SyntaxError{Index: next.index, Msg: fmt.Sprintf("unexpected %s, expected %s", next.tType, tType)}
}

func (p *patternParser) consumeText() string {
	var result strings.Builder
	for {
		t := p.tryConsumeToken(tokenChar)
		if t == nil {
			t = p.tryConsumeToken(tokenEscapedChar)
		}
		if t == nil {
			break
		}
		result.WriteString(t.value)
	}

	return result.String()
}

func (p *patternParser) maybeAddPartFromPendingFixedValue() {
	if p.pendingFixedValue == "" {
		return
	}

	p.tokens = append(p.tokens, Literal(p.pendingFixedValue))
	p.pendingFixedValue = ""
}

func (p *patternParser) addPart(prefix string, nameToken, patternToken *lexToken, suffix string, modifier Modifier) error {
	if nameToken == nil && patternToken == nil && modifier == ModifierNone {
		p.pendingFixedValue += prefix + suffix

		return nil
	}

	p.maybeAddPartFromPendingFixedValue()

	if nameToken == nil && patternToken == nil {
		if prefix+suffix == "" {
			return nil
		}

		p.tokens = append(p.tokens, &Key{Prefix: prefix, Suffix: suffix, Modifier: modifier})

		return nil
	}

	pattern := p.segmentWildcardRegexp
	if patternToken != nil {
		pattern = patternToken.value
	}

	key := &Key{
		Prefix:   prefix,
		Suffix:   suffix,
		Pattern:  pattern,
		Modifier: modifier,
	}

	if nameToken != nil {
		key.Name = nameToken.value
		if p.isDuplicateName(key.Name) {
			return fmt.Errorf("%w: %q", ErrDuplicateName, key.Name)
		}
	} else {
		key.Name = strconv.Itoa(p.nextNumericName)
		key.Positional = true
		p.nextNumericName++
	}

	p.tokens = append(p.tokens, key)

	return nil
}

func (p *patternParser) isDuplicateName(name string) bool {
	for _, t := range p.tokens {
		if k, ok := t.(*Key); ok && !k.Positional && k.Name == name {
			return true
		}
	}

	return false
}

// generateSegmentWildcardRegexp returns the pattern used by parameters without a custom pattern.
func generateSegmentWildcardRegexp(delimiter string) string {
	return "[^" + escapeRegexpString(delimiter) + "]+?"
}
