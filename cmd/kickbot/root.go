package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kickbot",
	Short: "Kick-Bot - remove inactive members from Telegram groups",
	Long: `Kick-Bot tracks member activity in Telegram groups and, on admin
request, removes members that have been inactive beyond a given period.`,
	Version: Version,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
