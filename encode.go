package pathtoregexp

import (
	neturl "net/url"

	"github.com/dunglas/whatwg-url/url"
)

var urlParser = url.NewParser()

// EncodeURIComponent percent-encodes a value so that it fits in a single path segment:
// reserved characters, including "/", are encoded.
func EncodeURIComponent(value string, _ *Key) (string, error) {
	if value == "" {
		return value, nil
	}

	return urlParser.PercentEncodeString(value, url.UserInfoPercentEncodeSet), nil
}

// EncodePath canonicalizes a value spanning several path segments:
// "/" is preserved, and the characters not allowed in a URL path are percent-encoded.
// Dot segments are resolved like browsers do.
func EncodePath(value string, _ *Key) (string, error) {
	if value == "" {
		return value, nil
	}

	leadingSlash := value[0] == '/'

	modifiedValue := value
	if !leadingSlash {
		modifiedValue = "/-" + value
	}

	u, err := urlParser.BasicParser(modifiedValue, nil, urlParser.NewUrl(), url.StatePathStart)
	if err != nil {
		return "", err
	}

	result := u.Pathname()
	if !leadingSlash {
		result = result[2:]
	}

	return result, nil
}

// DecodeURIComponent reverses percent-encoding, for use as a matcher's Decode option.
func DecodeURIComponent(value string, _ *Key) (string, error) {
	return neturl.PathUnescape(value)
}
