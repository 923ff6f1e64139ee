package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ecolog-dev/ecolog/internal/config"
	"github.com/ecolog-dev/ecolog/internal/filesystems"
	"github.com/ecolog-dev/ecolog/internal/store"
	"github.com/ecolog-dev/ecolog/internal/types"
)

var (
	cfgFile string
	shelter bool
)

var rootCmd = &cobra.Command{
	Use:   "ecolog [workspace-path]",
	Short: "Inspect and classify workspace environment variables",
	Long: `Ecolog discovers .env files in a workspace, parses their variables,
and classifies each value with a semantic type (boolean, number, url,
database_url, ipv4, iso_date, iso_time, json, hex_color, ...).

Custom types, per-type toggles, and the preferred environment come from
the config file or environment.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runList(args); err != nil {
			fmt.Printf("Listing failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ecolog.yaml)")
	rootCmd.PersistentFlags().String("preferred-env", "", "suffix of the .env.<suffix> file that takes top priority")
	rootCmd.PersistentFlags().Bool("interpolation", false, "resolve ${VAR} references in values")
	rootCmd.PersistentFlags().BoolVar(&shelter, "shelter", false, "mask sensitive values in output")

	_ = viper.BindPFlag("preferred_environment", rootCmd.PersistentFlags().Lookup("preferred-env"))
	_ = viper.BindPFlag("interpolation", rootCmd.PersistentFlags().Lookup("interpolation"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ecolog")
	}

	viper.SetEnvPrefix("ecolog")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engine bundles the configured core pieces behind every command.
type engine struct {
	opts       config.Options
	store      *store.Store
	classifier *types.Classifier
}

func newEngine(args []string) (*engine, error) {
	opts, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	if len(args) > 0 {
		path := args[0]
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			path = filesystems.NewLocalFS().Dir(path)
		}
		opts.Path = path
	}

	log := logrus.StandardLogger()
	registry := types.NewRegistry(log)
	registry.Configure(opts.Types, opts.CustomTypes)

	st := store.New(filesystems.NewLocalFS(), log)
	if err := st.Load(context.Background(), opts, true); err != nil {
		return nil, err
	}

	return &engine{
		opts:       opts,
		store:      st,
		classifier: types.NewClassifier(registry),
	}, nil
}

// variables returns the loaded mapping fully classified, sorted by
// name.
func (e *engine) variables() []classified {
	snapshot := e.store.Snapshot()
	vars := make([]classified, 0, len(snapshot))
	for name, entry := range snapshot {
		tag, value := e.classifier.Detect(entry.Value)
		vars = append(vars, classified{
			Name:   name,
			Value:  value,
			Type:   tag,
			Source: entry.Source,
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

type classified struct {
	Name   string
	Value  string
	Type   string
	Source string
}

// display masks the value when sheltering applies.
func (v classified) display(opts config.Options) string {
	if shelter && types.Sensitive(v.Name, v.Type) {
		return types.Mask(v.Value, opts.ShelterKeep)
	}
	return v.Value
}

func runList(args []string) error {
	eng, err := newEngine(args)
	if err != nil {
		return err
	}

	vars := eng.variables()
	if len(vars) == 0 {
		fmt.Println("No environment variables found")
		return nil
	}

	for _, v := range vars {
		fmt.Printf("%s=%s [%s]\n", v.Name, v.display(eng.opts), v.Type)
		fmt.Printf("  Source: %s\n", v.Source)
	}
	return nil
}
