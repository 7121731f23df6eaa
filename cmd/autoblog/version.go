package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of autoblog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autoblog %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
