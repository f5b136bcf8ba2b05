package pathtoregexp_test

import (
	"fmt"
	"testing"

	"github.com/dunglas/go-pathtoregexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRegexp(t *testing.T) {
	tests := []struct {
		pattern string
		options *pathtoregexp.Options
		want    string
	}{
		{"/:id", nil, `^(?:\/([^\/#\?]+?))[\/#\?]?$`},
		{"/:id", &pathtoregexp.Options{Strict: true}, `^(?:\/([^\/#\?]+?))$`},
		{"/:id?", nil, `^(?:\/([^\/#\?]+?))?[\/#\?]?$`},
		{"/:ids*", &pathtoregexp.Options{Strict: true}, `^(?:\/((?:[^\/#\?]+?)(?:\/(?:[^\/#\?]+?))*))?$`},
		{"/blog", &pathtoregexp.Options{Partial: true}, `^\/blog(?:[\/#\?](?=$))?(?=[\/#\?]|$)`},
		{"/blog/", &pathtoregexp.Options{Partial: true, Strict: true}, `^\/blog\/`},
		{"/:id", &pathtoregexp.Options{EndsWith: "."}, `^(?:\/([^\/#\?]+?))[\/#\?]?(?=[\.]|$)`},
		{"(\\d+)", nil, `^(\d+)[\/#\?]?$`},
		{"/:id", &pathtoregexp.Options{NoStart: true, Strict: true}, `(?:\/([^\/#\?]+?))$`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, _, err := pathtoregexp.ToRegexp(tt.pattern, tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.want, re.String())
		})
	}
}

func TestMatchOptions(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		options *pathtoregexp.Options
		path    string
		want    *pathtoregexp.MatchResult
	}{
		{
			name:    "strict rejects trailing slash",
			pattern: "/:id",
			options: &pathtoregexp.Options{Strict: true},
			path:    "/42/",
		},
		{
			name:    "partial",
			pattern: "/blog",
			options: &pathtoregexp.Options{Partial: true},
			path:    "/blog/post",
			want:    &pathtoregexp.MatchResult{Path: "/blog", Params: map[string]any{}},
		},
		{
			name:    "partial stops at delimiters",
			pattern: "/blog",
			options: &pathtoregexp.Options{Partial: true},
			path:    "/blogger",
		},
		{
			name:    "ends with",
			pattern: "/:id",
			options: &pathtoregexp.Options{EndsWith: "."},
			path:    "/file.json",
			want:    &pathtoregexp.MatchResult{Path: "/file", Params: map[string]any{"id": "file"}},
		},
		{
			name:    "case insensitive",
			pattern: "/user/:id",
			path:    "/USER/42",
			want:    &pathtoregexp.MatchResult{Path: "/USER/42", Params: map[string]any{"id": "42"}},
		},
		{
			name:    "case sensitive",
			pattern: "/user/:id",
			options: &pathtoregexp.Options{Sensitive: true},
			path:    "/USER/42",
		},
		{
			name:    "decode",
			pattern: "/search/:query",
			options: &pathtoregexp.Options{Decode: pathtoregexp.DecodeURIComponent},
			path:    "/search/a%20b%2Fc",
			want:    &pathtoregexp.MatchResult{Path: "/search/a%20b%2Fc", Params: map[string]any{"query": "a b/c"}},
		},
		{
			name:    "repeated with suffix",
			pattern: "{/:tag;}*",
			path:    "/a;/b;",
			want:    &pathtoregexp.MatchResult{Path: "/a;/b;", Params: map[string]any{"tag": []string{"a", "b"}}},
		},
		{
			name:    "no start anchor",
			pattern: "/:id",
			options: &pathtoregexp.Options{NoStart: true},
			path:    "/api/42",
			want:    &pathtoregexp.MatchResult{Path: "/42", Index: 4, Params: map[string]any{"id": "42"}},
		},
		{
			name:    "custom delimiter",
			pattern: "/:name",
			options: &pathtoregexp.Options{Delimiter: "/."},
			path:    "/index.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := pathtoregexp.Match(tt.pattern, tt.options)
			require.NoError(t, err)

			result, err := match(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestMatchRepeatWithoutAffix(t *testing.T) {
	_, err := pathtoregexp.Match(":ids*", nil)
	assert.ErrorIs(t, err, pathtoregexp.ErrRepeatWithoutAffix)
}

func TestMatchDecodeError(t *testing.T) {
	match := pathtoregexp.MustMatch("/:id", &pathtoregexp.Options{Decode: pathtoregexp.DecodeURIComponent})

	_, err := match("/%zz")
	assert.ErrorIs(t, err, pathtoregexp.ErrInvalidValue)
}

func TestMatchEncodesLiterals(t *testing.T) {
	match := pathtoregexp.MustMatch("/café/:id", &pathtoregexp.Options{Encode: pathtoregexp.EncodePath})

	result, err := match("/caf%C3%A9/1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, map[string]any{"id": "1"}, result.Params)
}

func TestRoundTrip(t *testing.T) {
	patterns := []struct {
		pattern string
		data    map[string]any
	}{
		{"/:id", map[string]any{"id": "42"}},
		{"/:ids*", map[string]any{"ids": []string{"1", "2"}}},
		{"/user{-:role}?", map[string]any{"role": "admin"}},
		{`/:file.:ext(json|yaml)`, map[string]any{"file": "data", "ext": "json"}},
		{"/files/:path+/raw", map[string]any{"path": []string{"a", "b", "c"}}},
	}

	for _, p := range patterns {
		t.Run(p.pattern, func(t *testing.T) {
			path, err := pathtoregexp.MustCompile(p.pattern, nil)(p.data)
			require.NoError(t, err)

			result, err := pathtoregexp.MustMatch(p.pattern, nil)(path)
			require.NoError(t, err)
			require.NotNil(t, result, "path: %q", path)
			assert.Equal(t, p.data, result.Params)
		})
	}
}

func ExampleMatch() {
	match, err := pathtoregexp.Match("/files/:path*", nil)
	if err != nil {
		panic(err)
	}

	result, _ := match("/files/docs/readme.md")
	fmt.Println(result.Path, result.Params["path"])
	// Output: /files/docs/readme.md [docs readme.md]
}
