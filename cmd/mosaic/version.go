package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/mosaic"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mosaic",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mosaic version %s\n", strings.TrimSpace(mosaic.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
