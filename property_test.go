package pathtoregexp_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dunglas/go-pathtoregexp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestGeneratorProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	segment := gen.RegexMatch(`^[a-z0-9_~-]{1,12}$`)
	base := gen.RegexMatch(`^/[a-z]{1,10}$`)

	// Property: generated paths are matched back to the same data
	toPath := pathtoregexp.MustCompile("/users/:id/files/:path*", nil)
	match := pathtoregexp.MustMatch("/users/:id/files/:path*", nil)

	properties.Property("round trip", prop.ForAll(
		func(id string, path []string) bool {
			data := map[string]any{"id": id}
			if len(path) > 0 {
				data["path"] = path
			}

			generated, err := toPath(data)
			if err != nil {
				return false
			}

			result, err := match(generated)
			if err != nil || result == nil {
				return false
			}

			return reflect.DeepEqual(data, result.Params)
		},
		segment,
		gen.SliceOf(segment),
	))

	// Property: omitting an optional key removes its prefix, suffix and value
	properties.Property("optional omission", prop.ForAll(
		func(prefix string) bool {
			toPath, err := pathtoregexp.Compile(prefix+"{-:role}?", nil)
			if err != nil {
				return false
			}

			generated, err := toPath(nil)

			return err == nil && generated == prefix
		},
		base,
	))

	// Property: repeated values are emitted in order, each with its prefix
	repeated := pathtoregexp.MustCompile("/:ids*", nil)

	properties.Property("repeat ordering", prop.ForAll(
		func(ids []string) bool {
			generated, err := repeated(map[string]any{"ids": ids})
			if err != nil {
				return false
			}

			if len(ids) == 0 {
				return generated == ""
			}

			return generated == "/"+strings.Join(ids, "/")
		},
		gen.SliceOf(segment),
	))

	// Property: required keys never accept missing values
	properties.Property("required values", prop.ForAll(
		func(name string) bool {
			toPath, err := pathtoregexp.Compile("/:"+name, nil)
			if err != nil {
				return false
			}

			_, err = toPath(map[string]any{})

			return err != nil
		},
		gen.RegexMatch(`^[a-zA-Z_][a-zA-Z0-9_]{0,8}$`),
	))

	properties.TestingRun(t)
}
