// Package cmd is for command line interactions with the sponge application
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "sponge",
	Short: `Design miRNA sponge cassettes that silence a regulatory program in
off-target cell types while leaving target cell types untouched`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logrus.Fatalf("%v", err)
	}
}
