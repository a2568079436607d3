package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndiayefarms/broodplan/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planctl",
		Short: "planctl - offline broiler cycle planning",
		Long: `planctl runs the flock-size calculator from the command line.
It needs no server or database: supply your budget, space, experience level
and cycle duration and it prints the recommendation.`,
	}

	rootCmd.AddCommand(cli.RecommendCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
