package pathtoregexp_test

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/dunglas/go-pathtoregexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileValidation(t *testing.T) {
	toPath, err := pathtoregexp.Compile(`/:id(\d+)`, nil)
	require.NoError(t, err)

	_, err = toPath(map[string]any{"id": "abc"})

	var valueErr *pathtoregexp.ValueError
	require.ErrorAs(t, err, &valueErr)
	assert.ErrorIs(t, err, pathtoregexp.ErrInvalidValue)
	assert.Equal(t, "id", valueErr.Key.Name)
	assert.Equal(t, "abc", valueErr.Value)

	toPath, err = pathtoregexp.Compile(`/:id(\d+)`, &pathtoregexp.Options{DisableValidation: true})
	require.NoError(t, err)

	path, err := toPath(map[string]any{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/abc", path)
}

func TestCompileSensitive(t *testing.T) {
	data := map[string]any{"lang": "EN"}

	path, err := pathtoregexp.MustCompile("/:lang(en|fr)", nil)(data)
	require.NoError(t, err)
	assert.Equal(t, "/EN", path)

	_, err = pathtoregexp.MustCompile("/:lang(en|fr)", &pathtoregexp.Options{Sensitive: true})(data)
	assert.ErrorIs(t, err, pathtoregexp.ErrInvalidValue)
}

func TestCompileLookahead(t *testing.T) {
	toPath := pathtoregexp.MustCompile(`/:slug((?!admin)[a-z]+)`, nil)

	path, err := toPath(map[string]any{"slug": "blog"})
	require.NoError(t, err)
	assert.Equal(t, "/blog", path)

	_, err = toPath(map[string]any{"slug": "admin"})
	assert.ErrorIs(t, err, pathtoregexp.ErrInvalidValue)
}

func TestCompileEncode(t *testing.T) {
	toPath := pathtoregexp.MustCompile("/search/:query", &pathtoregexp.Options{Encode: pathtoregexp.EncodeURIComponent})

	path, err := toPath(map[string]any{"query": "a b/c"})
	require.NoError(t, err)
	assert.Equal(t, "/search/a%20b%2Fc", path)

	toPath = pathtoregexp.MustCompile("/files/:path(.*)", &pathtoregexp.Options{Encode: pathtoregexp.EncodePath})

	path, err = toPath(map[string]any{"path": "docs/read me.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/files/docs/read%20me.txt", path)
}

func TestCompileEncodeError(t *testing.T) {
	failing := errors.New("cannot encode")
	toPath := pathtoregexp.MustCompile("/:id", &pathtoregexp.Options{
		Encode: func(value string, key *pathtoregexp.Key) (string, error) {
			return "", failing
		},
	})

	_, err := toPath(map[string]any{"id": "1"})
	assert.ErrorIs(t, err, pathtoregexp.ErrInvalidValue)
}

type slug struct {
	title string
}

func (s slug) String() string {
	return "slug-" + s.title
}

func TestCompileValueTypes(t *testing.T) {
	toPath := pathtoregexp.MustCompile("/:a/:b/:c/:d*", nil)
	number := 3

	path, err := toPath(map[string]any{
		"a": 1.5,
		"b": slug{"x"},
		"c": &number,
		"d": [2]int64{4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, "/1.5/slug-x/3/4/5", path)

	_, err = toPath(map[string]any{"a": struct{}{}, "b": "b", "c": "c"})
	assert.ErrorIs(t, err, pathtoregexp.ErrUnsupportedValue)

	var missing *int
	_, err = toPath(map[string]any{"a": missing, "b": "b", "c": "c"})
	assert.ErrorIs(t, err, pathtoregexp.ErrMissingValue)

	u := &url.URL{Path: "p"}
	path, err = toPath(map[string]any{"a": u, "b": "b", "c": "c"})
	require.NoError(t, err)
	assert.Equal(t, "/p/b/c", path)
}

func TestCompileLiteralGroup(t *testing.T) {
	path, err := pathtoregexp.MustCompile("/a{.b}+", nil)(nil)
	require.NoError(t, err)
	assert.Equal(t, "/a.b", path)

	path, err = pathtoregexp.MustCompile("/a{.b}*", nil)(nil)
	require.NoError(t, err)
	assert.Equal(t, "/a", path)
}

func TestCompileInvalidKeyPattern(t *testing.T) {
	_, err := pathtoregexp.Compile("/:id([)", nil)
	assert.ErrorIs(t, err, pathtoregexp.ErrSyntax)
}

func TestMustCompilePanics(t *testing.T) {
	assert.PanicsWithValue(t, `pathtoregexp: Compile("/("): invalid pattern: unbalanced pattern at 1`, func() {
		pathtoregexp.MustCompile("/(", nil)
	})
}

func TestCompileConcurrent(t *testing.T) {
	toPath := pathtoregexp.MustCompile(`/users/:id(\d+)/tags/:tags*`, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			want := fmt.Sprintf("/users/%d/tags/t%d", i, i)
			got, err := toPath(map[string]any{"id": i, "tags": []string{"t" + strconv.Itoa(i)}})
			if err != nil {
				errs <- err

				return
			}

			if got != want {
				errs <- fmt.Errorf("want %q; got %q", want, got)
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func ExampleCompile() {
	toPath, err := pathtoregexp.Compile("/user/:id", nil)
	if err != nil {
		panic(err)
	}

	path, _ := toPath(map[string]any{"id": 42})
	fmt.Println(path)

	toPath = pathtoregexp.MustCompile("/user{-:role}?", nil)

	path, _ = toPath(nil)
	fmt.Println(path)

	path, _ = toPath(map[string]any{"role": "admin"})
	fmt.Println(path)
	// Output:
	// /user/42
	// /user
	// /user-admin
}
