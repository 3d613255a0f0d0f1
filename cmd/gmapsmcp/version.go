package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapgrid/gmapsmcp/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
