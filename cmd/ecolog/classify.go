package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ecolog-dev/ecolog/internal/config"
	"github.com/ecolog-dev/ecolog/internal/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <value>...",
	Short: "Classify arbitrary values without touching any env file",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := config.FromViper(viper.GetViper())
		if err != nil {
			logrus.Warnf("read configuration: %v", err)
			opts = config.Default()
		}

		registry := types.NewRegistry(logrus.StandardLogger())
		registry.Configure(opts.Types, opts.CustomTypes)
		classifier := types.NewClassifier(registry)

		for _, value := range args {
			tag, normalized := classifier.Detect(value)
			fmt.Printf("%s\t%s\n", tag, normalized)
		}
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
