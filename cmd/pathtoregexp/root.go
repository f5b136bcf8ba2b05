// Command pathtoregexp parses route patterns, generates paths from them and matches paths against them.
//
// Options are read, by decreasing priority, from flags, PATHTOREGEXP_* environment
// variables (PATHTOREGEXP_NO_VALIDATE for --no-validate) and the YAML file given by --config.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dunglas/go-pathtoregexp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PATHTOREGEXP"

type cli struct {
	config *viper.Viper
	logger *log.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{config: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pathtoregexp",
		Short: "Turn route patterns into paths and matchers",
		Long: `pathtoregexp parses route patterns such as "/users/:id" or "/files/:path*",
generates paths by substituting values for their parameters, and matches paths
against them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "configuration file (YAML)")
	flags.String("delimiter", pathtoregexp.DefaultDelimiter, "characters a default parameter never matches")
	flags.String("prefixes", pathtoregexp.DefaultPrefixes, "characters automatically used as parameter prefixes")
	flags.Bool("sensitive", false, "case-sensitive matching and validation")
	flags.Bool("strict", false, "disallow an optional trailing delimiter when matching")
	flags.Bool("no-validate", false, "do not check generated values against their pattern")
	flags.String("encode", "none", "value encoding: none, component or path")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	if err := c.config.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		c.newParseCommand(),
		c.newCompileCommand(),
		c.newMatchCommand(),
		c.newRouteCommand(),
	)

	return rootCmd
}

func (c *cli) init(cmd *cobra.Command) error {
	c.config.SetEnvPrefix(envPrefix)
	c.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.config.AutomaticEnv()

	if file := c.config.GetString("config"); file != "" {
		c.config.SetConfigFile(file)
		if err := c.config.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level, err := log.ParseLevel(c.config.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	c.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Prefix: "pathtoregexp",
	})

	if file := c.config.ConfigFileUsed(); file != "" {
		c.logger.Debug("loaded configuration", "file", file)
	}

	return nil
}

// options builds the library options from the configuration.
func (c *cli) options() (*pathtoregexp.Options, error) {
	o := &pathtoregexp.Options{
		Delimiter:         c.config.GetString("delimiter"),
		Prefixes:          c.config.GetString("prefixes"),
		Sensitive:         c.config.GetBool("sensitive"),
		Strict:            c.config.GetBool("strict"),
		DisableValidation: c.config.GetBool("no-validate"),
	}

	if o.Prefixes == "" {
		o.DisablePrefixes = true
	}

	switch encoding := c.config.GetString("encode"); encoding {
	case "", "none":
	case "component":
		o.Encode = pathtoregexp.EncodeURIComponent
		o.Decode = pathtoregexp.DecodeURIComponent
	case "path":
		o.Encode = pathtoregexp.EncodePath
		o.Decode = pathtoregexp.DecodeURIComponent
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}

	c.logger.Debug("options", "delimiter", o.Delimiter, "prefixes", o.Prefixes, "sensitive", o.Sensitive, "strict", o.Strict, "validate", !o.DisableValidation)

	return o, nil
}
