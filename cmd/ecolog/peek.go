package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var peekCmd = &cobra.Command{
	Use:   "peek <name> [workspace-path]",
	Short: "Show one variable's value, type, and source file",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		eng, err := newEngine(args[1:])
		if err != nil {
			fmt.Printf("Peek failed: %v\n", err)
			os.Exit(1)
		}

		entry, ok := eng.store.Get(name)
		if !ok {
			// Not an error: the variable just is not defined here.
			logrus.Warnf("variable %q not found", name)
			return
		}

		tag, value := eng.classifier.Detect(entry.Value)
		v := classified{Name: name, Value: value, Type: tag, Source: entry.Source}
		fmt.Printf("%s=%s [%s]\n", name, v.display(eng.opts), tag)
		fmt.Printf("  Source: %s\n", entry.Source)
	},
}

func init() {
	rootCmd.AddCommand(peekCmd)
}
