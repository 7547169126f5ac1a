package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lottolab/powerpick/internal/prize"
)

var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Print the prize tiers and their odds",
	Run:   runOdds,
}

func init() {
	rootCmd.AddCommand(oddsCmd)
}

func runOdds(cmd *cobra.Command, args []string) {
	fmt.Printf("%-8s %-12s %s\n", "Match", "Prize", "Odds")
	for _, tier := range prize.Tiers() {
		label := fmt.Sprintf("%d", tier.WhiteMatches)
		if tier.PowerballMatch {
			label += " + PB"
		}
		fmt.Printf("%-8s %-12s 1 in %s\n", label, tier.Base.String(), tier.OddsDenominator.String())
	}
	fmt.Printf("\nOverall odds of winning any prize: 1 in %s\n", prize.OverallOdds().String())
}
