package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Scan the root and write the dashboard document once",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := buildServices()

		stats, err := svc.generator.Generate(cmd.Context())
		if err != nil {
			return err
		}
		if !stats.Written {
			fmt.Printf("No projects found under %s; dashboard left untouched\n", cfg.Root)
			return nil
		}

		fmt.Printf("Dashboard written to %s\n", cfg.OutputPath())
		fmt.Printf("  %d projects (%d with catalogue, %d pinned, %d recently in editor)\n",
			stats.Total, stats.WithCatalogue, stats.Pinned, stats.EditorRecent)

		categories := make([]string, 0, len(stats.ByCategory))
		for c := range stats.ByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Printf("  %-12s %d\n", c, stats.ByCategory[c])
		}
		return nil
	},
}
