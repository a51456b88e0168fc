/*
Copyright © 2023 the nccheck authors.
This file is part of nccheck.

nccheck is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nccheck is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nccheck.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package nccheckutil wires the nccheck checker into a command-line
// interface.
package nccheckutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nccheck/nccheck"
	"github.com/nccheck/nccheck/netcdf"
	"github.com/nccheck/nccheck/registry"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	// Options are the configuration options available to nccheck.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the logging level: debug, info, warning or error.`,
			defaultVal: "warning",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "definition",
			usage: `
              definition specifies the product specification document to
              check files against.`,
			shorthand:  "d",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "registry",
			usage: `
              registry specifies a product registry document. Used with
              --product to resolve a definition by short name instead of
              passing --definition directly.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "product",
			usage: `
              product specifies the short name of the product to resolve
              in the registry given by --registry.`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "version",
			usage: `
              version selects the product version to resolve in the
              registry. The default selects the latest release.`,
			defaultVal: registry.Latest,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "quiet",
			usage: `
              quiet suppresses all terminal output. The result is only
              reported through the exit status.`,
			shorthand:  "q",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "warnings",
			usage: `
              warnings prints only warnings and errors, skipping passing
              checks.`,
			shorthand:  "w",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "errors-only",
			usage: `
              errors-only prints only errors. Takes precedence over
              --warnings.`,
			shorthand:  "e",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "comments",
			usage: `
              comments also prints informational comments attached to
              passing checks.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "color",
			usage: `
              color enables colored terminal output.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("NCCHECK")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(checkCmd)
	Root.AddCommand(dumpCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and applies the configured log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("nccheck: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("nccheck: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "nccheck",
	Short: "A compliance checker for scientific data files.",
	Long: `nccheck checks hierarchical scientific data files against
machine-readable product specifications, certifying that instrument and
aircraft data files meet a metadata standard before publication.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'NCCHECK_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of nccheck.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nccheck v%s\n", nccheck.Version)
	},
	DisableAutoGenTag: true,
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] FILE",
	Short: "Check a data file against a product specification.",
	Long: `check reads a data file (classic NetCDF, or a JSON container
representation produced by other tooling), checks it against the product
specification given by --definition or resolved through --registry and
--product, and prints the outcome of every check performed. The exit
status is zero only when all checks pass.`,
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		passing, err := RunCheck(Cfg, args[0], os.Stdout)
		if err != nil {
			return err
		}
		if !passing {
			// The error has already been rendered; signal through the
			// exit status without repeating it.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			os.Exit(1)
		}
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] FILE",
	Short: "Print the container representation of a data file.",
	Long: `dump reads a data file and prints its container representation
(attributes, dimensions, variables and groups) as JSON. The output has
the same shape as a product specification document, which makes it a
convenient starting point for authoring one.`,
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := netcdf.ReaderFor(args[0]).Read(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	},
}

// resolveDefinition decides which specification document to use from
// the configured definition path or registry lookup.
func resolveDefinition(cfg *viper.Viper) (string, error) {
	if definition := cfg.GetString("definition"); definition != "" {
		return definition, nil
	}
	regPath := cfg.GetString("registry")
	product := cfg.GetString("product")
	if regPath == "" || product == "" {
		return "", fmt.Errorf("nccheck: either --definition or both --registry and --product must be given")
	}
	reg, err := registry.Load(regPath)
	if err != nil {
		return "", err
	}
	return reg.Definition(product, cfg.GetString("version"))
}

// RunCheck checks filename against the configured specification,
// rendering the results to w, and reports whether the file passed.
func RunCheck(cfg *viper.Viper, filename string, w io.Writer) (bool, error) {
	definition, err := resolveDefinition(cfg)
	if err != nil {
		return false, err
	}

	pc := nccheck.New(definition)
	ledger, err := pc.Check(netcdf.ReaderFor(filename), filename)
	if err != nil {
		return false, err
	}

	report := &Report{
		Quiet:          cast.ToBool(cfg.Get("quiet")),
		IgnoreInfo:     cast.ToBool(cfg.Get("errors-only")) || cast.ToBool(cfg.Get("warnings")),
		IgnoreWarnings: cast.ToBool(cfg.Get("errors-only")),
		Comments:       cast.ToBool(cfg.Get("comments")),
		Color:          cast.ToBool(cfg.Get("color")),
	}
	if err := report.Render(w, ledger); err != nil {
		return false, err
	}
	return ledger.Passing()
}
