package main

import (
	"fmt"

	"github.com/dunglas/go-pathtoregexp"
	"github.com/dunglas/go-pathtoregexp/manifest"
	"github.com/spf13/cobra"
)

func (c *cli) newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse PATTERN",
		Short: "Print the tokens of a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := c.options()
			if err != nil {
				return err
			}

			tokens, err := pathtoregexp.Parse(args[0], options)
			if err != nil {
				return err
			}

			c.logger.Debug("parsed pattern", "pattern", args[0], "tokens", len(tokens))

			return encodeYAML(cmd.OutOrStdout(), viewTokens(tokens))
		},
	}
}

func (c *cli) newCompileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compile PATTERN [key=value | key[]=value]...",
		Short: "Generate a path from a pattern",
		Example: `  pathtoregexp compile /user/:id id=42
  pathtoregexp compile '/files/:path*' 'path[]=a' 'path[]=b'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := c.options()
			if err != nil {
				return err
			}

			data, err := parseData(args[1:])
			if err != nil {
				return err
			}

			toPath, err := pathtoregexp.Compile(args[0], options)
			if err != nil {
				return err
			}

			path, err := toPath(data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

			return err
		},
	}
}

func (c *cli) newMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match PATTERN PATH",
		Short: "Match a path against a pattern and print its parameters",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := c.options()
			if err != nil {
				return err
			}

			if options.Partial, err = cmd.Flags().GetBool("partial"); err != nil {
				return err
			}

			// Literal text of a matcher is encoded too, and must keep its slashes.
			if c.config.GetString("encode") == "component" {
				options.Encode = pathtoregexp.EncodePath
			}

			match, err := pathtoregexp.Match(args[0], options)
			if err != nil {
				return err
			}

			result, err := match(args[1])
			if err != nil {
				return err
			}

			if result == nil {
				return fmt.Errorf("%q does not match %q", args[1], args[0])
			}

			return encodeYAML(cmd.OutOrStdout(), result.Params)
		},
	}

	cmd.Flags().Bool("partial", false, "match a leading part of the path")

	return cmd
}

func (c *cli) newRouteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route MANIFEST (NAME [key=value]... | --match PATH)",
		Short: "Generate or match the paths of a route manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			c.logger.Info("loaded manifest", "file", args[0], "routes", len(m.Routes))

			if path, _ := cmd.Flags().GetString("match"); path != "" {
				route, result, err := m.Match(path)
				if err != nil {
					return err
				}

				if route == nil {
					return fmt.Errorf("no route matches %q", path)
				}

				return encodeYAML(cmd.OutOrStdout(), map[string]any{
					"route":     route.Name,
					"pattern":   route.String(),
					"component": route.Component,
					"params":    result.Params,
				})
			}

			if len(args) < 2 {
				return fmt.Errorf("missing route name")
			}

			data, err := parseData(args[2:])
			if err != nil {
				return err
			}

			path, err := m.Generate(args[1], data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

			return err
		},
	}

	cmd.Flags().String("match", "", "print the route matching this path instead of generating one")

	return cmd
}
