package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dunglas/go-pathtoregexp"
	"gopkg.in/yaml.v3"
)

// parseData converts "key=value" arguments to generator data.
// "key[]=value" appends to a sequence, and "key[]=" alone yields an empty one.
func parseData(args []string) (map[string]any, error) {
	data := make(map[string]any, len(args))

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", arg)
		}

		name, isSequence := strings.CutSuffix(key, "[]")
		if !isSequence {
			if _, ok := data[name]; ok {
				return nil, fmt.Errorf("duplicate value for %q: use %s[]=value for sequences", name, name)
			}

			data[name] = value

			continue
		}

		values, _ := data[name].([]string)
		if values == nil {
			if _, ok := data[name]; ok {
				return nil, fmt.Errorf("%q is both a value and a sequence", name)
			}

			values = []string{}
		}

		if value != "" {
			values = append(values, value)
		}

		data[name] = values
	}

	return data, nil
}

type tokenView struct {
	Literal    *string `yaml:"literal,omitempty"`
	Name       string  `yaml:"name,omitempty"`
	Positional bool    `yaml:"positional,omitempty"`
	Prefix     string  `yaml:"prefix,omitempty"`
	Suffix     string  `yaml:"suffix,omitempty"`
	Pattern    string  `yaml:"pattern,omitempty"`
	Modifier   string  `yaml:"modifier,omitempty"`
}

func viewTokens(tokens []pathtoregexp.Token) []tokenView {
	views := make([]tokenView, 0, len(tokens))

	for _, t := range tokens {
		switch t := t.(type) {
		case pathtoregexp.Literal:
			s := string(t)
			views = append(views, tokenView{Literal: &s})
		case *pathtoregexp.Key:
			views = append(views, tokenView{
				Name:       t.Name,
				Positional: t.Positional,
				Prefix:     t.Prefix,
				Suffix:     t.Suffix,
				Pattern:    t.Pattern,
				Modifier:   string(t.Modifier),
			})
		}
	}

	return views
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
