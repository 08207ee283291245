package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btwebgroup/contentlab/internal/brief"
	"github.com/btwebgroup/contentlab/internal/config"
)

var briefsCmd = &cobra.Command{
	Use:   "briefs",
	Short: "List saved briefs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		briefs, err := brief.NewLibrary(cfg.BriefsDir).List()
		if err != nil {
			return err
		}
		if len(briefs) == 0 {
			fmt.Printf("No .txt briefs in %s\n", cfg.BriefsDir)
			return nil
		}
		for _, b := range briefs {
			fmt.Printf("%-30s %s\n", b.Name, b.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(briefsCmd)
}
