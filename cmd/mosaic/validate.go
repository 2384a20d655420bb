package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mosaic/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a dashboard document for consistency",
	Long:  `Decodes an exported dashboard document and reports missing required fields, duplicate widget ids or structural problems.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Document is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := schema.Decode(string(data)); err != nil {
		return err
	}
	return nil
}
