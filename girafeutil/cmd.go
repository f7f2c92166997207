/*
Copyright © 2024 the GIRAFE authors.
This file is part of GIRAFE.

GIRAFE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GIRAFE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GIRAFE.  If not, see <http://www.gnu.org/licenses/>.*/

// Package girafeutil contains the command line interface of GIRAFE.
package girafeutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/girafe"
	"github.com/spatialmodel/girafe/emissions/release"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to GIRAFE.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the scenario file location. Scenario files
              are XML (with a girafe element) or TOML.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output specifies the path of the RELEASES file to write. The
              default is options/RELEASES in the working directory set in
              the scenario file.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{releasesCmd.Flags()},
		},
		{
			name: "shapefile",
			usage: `
              shapefile specifies an optional shapefile to write the
              footprint, mass and particle count of every release record to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{releasesCmd.Flags()},
		},
		{
			name: "source-kind",
			usage: `
              source-kind overrides the emission source kind chosen from
              the emission file name. Valid kinds are gridded, irregular
              and fire.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{releasesCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "Releases.PartsPerRelease",
			usage: `
              Releases.PartsPerRelease specifies the number of particles
              of every release record of inventory sources.`,
			defaultVal: release.DefaultPartsPerRelease,
			flagsets:   []*pflag.FlagSet{releasesCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "Releases.FireParticles",
			usage: `
              Releases.FireParticles specifies the particle budget of the
              dimmest fire detection, before the baseline reduction.`,
			defaultVal: release.DefaultFireParticles,
			flagsets:   []*pflag.FlagSet{releasesCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "Releases.FireBaseline",
			usage: `
              Releases.FireBaseline specifies the fraction of the fire
              particle budget that is held back. It must be in [0, 1).`,
			defaultVal: release.DefaultFireBaseline,
			flagsets:   []*pflag.FlagSet{releasesCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "Releases.MinConfidence",
			usage: `
              Releases.MinConfidence overrides the fire detection
              confidence threshold of the scenario file. Negative values
              keep the scenario value.`,
			defaultVal: -1.0,
			flagsets:   []*pflag.FlagSet{releasesCmd.Flags(), checkCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile specifies the path to the log file. The default is
              girafe-simulation.log in the working directory.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{releasesCmd.Flags()},
		},
		{
			name: "verbose",
			usage: `
              verbose specifies whether to log the details of every
              release.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GIRAFE")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	Cfg.AutomaticEnv()

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
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
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
	Root.AddCommand(releasesCmd)
	Root.AddCommand(checkCmd)
}

// setConfig reads in the option values of a TOML scenario file, if
// there is one. XML scenario files only hold the scenario itself.
func setConfig() error {
	cfgpath := os.ExpandEnv(Cfg.GetString("config"))
	if cfgpath == "" || strings.ToLower(filepath.Ext(cfgpath)) != ".toml" {
		return nil
	}
	Cfg.SetConfigFile(cfgpath)
	if err := Cfg.ReadInConfig(); err != nil {
		return fmt.Errorf("girafe: problem reading configuration file: %v", err)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "girafe",
	Short: "Prepare FLEXPART particle releases from emission datasets.",
	Long: `GIRAFE prepares the RELEASES input file of the FLEXPART Lagrangian particle
dispersion model from emission inventories (CEDS-style gridded NetCDF files,
CAMS or EDGAR-style NetCDF files) and satellite fire detections (MODIS and
VIIRS tables). Use the subcommands specified below to access the functionality.

Releases are defined in a scenario file (XML or TOML) given with the --config
flag. Other configuration can be changed by using command-line arguments,
by setting environment variables in the format 'GIRAFE_var' where 'var' is the
name of the variable to be set, or, for TOML scenario files, in the scenario
file itself. Paths are allowed to contain environment variables.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of GIRAFE.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("GIRAFE v%s\n", girafe.Version)
	},
	DisableAutoGenTag: true,
}

// releasesCmd is a command that writes the RELEASES file of a scenario.
var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "Write the FLEXPART RELEASES file.",
	Long: `releases reads the emission dataset of the scenario, samples it in the
zones of every release and writes one FLEXPART release record per emitting grid
cell or fire detection. A run that releases no particles fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := scenario()
		if err != nil {
			return err
		}
		_, err = Releases(cmd.OutOrStdout(), c, releaseOptions())
		return err
	},
	DisableAutoGenTag: true,
}

// checkCmd is a command that validates a scenario.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the scenario file.",
	Long: `check validates the releases, zones and particle settings of the scenario
without reading the emission dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := scenario()
		if err != nil {
			return err
		}
		log := logrus.New()
		log.Out = cmd.OutOrStdout()
		log.Formatter = &logrus.TextFormatter{DisableColors: true, DisableTimestamp: true, DisableSorting: true}
		return Check(log, c, releaseOptions())
	},
	DisableAutoGenTag: true,
}

// scenario reads the scenario file named by the config option.
func scenario() (*ConfigData, error) {
	path := Cfg.GetString("config")
	if path == "" {
		return nil, fmt.Errorf("girafe: you need to specify a scenario file with the --config flag")
	}
	return ReadConfigFile(path)
}

// releaseOptions returns the run options currently set in Cfg.
func releaseOptions() *ReleaseOptions {
	return &ReleaseOptions{
		OutputFile:      Cfg.GetString("output"),
		ShapeFile:       Cfg.GetString("shapefile"),
		SourceKind:      Cfg.GetString("source-kind"),
		PartsPerRelease: cast.ToInt(Cfg.Get("Releases.PartsPerRelease")),
		FireParticles:   cast.ToInt(Cfg.Get("Releases.FireParticles")),
		FireBaseline:    cast.ToFloat64(Cfg.Get("Releases.FireBaseline")),
		MinConfidence:   cast.ToFloat64(Cfg.Get("Releases.MinConfidence")),
		LogFile:         Cfg.GetString("LogFile"),
		Verbose:         Cfg.GetBool("verbose"),
	}
}
