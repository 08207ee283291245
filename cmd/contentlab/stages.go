package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btwebgroup/contentlab/internal/pipeline"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List pipeline stages in execution order",
	RunE: func(cmd *cobra.Command, args []string) error {
		stages, err := pipeline.Stages()
		if err != nil {
			return err
		}
		for i, st := range stages {
			key := st.Key
			if key == "" {
				key = "(blueprint)"
			}
			fmt.Printf("%d. %-20s %-18s -> %s\n", i+1, st.ID, st.Name, key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}
