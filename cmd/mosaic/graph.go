package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mosaic/internal/presentation/tui"
	"github.com/aretw0/mosaic/pkg/schema"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Render a dashboard document as a widget tree",
	Long:  `Decodes an exported dashboard document and prints its widget hierarchy.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading document: %v\n", err)
			os.Exit(1)
		}

		tree, err := schema.Decode(string(data))
		if err != nil {
			fmt.Printf("Error decoding document: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(tui.RenderTree(tree))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
