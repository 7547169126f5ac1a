package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lottolab/powerpick/internal/lottery"
	"github.com/lottolab/powerpick/internal/picker"
	"github.com/lottolab/powerpick/internal/service"
	"github.com/lottolab/powerpick/internal/store"
)

var (
	checkMain       []int
	checkPB         int
	checkDate       string
	checkMultiplier float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Score a pick against a cached draw and compute its prize",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().IntSliceVar(&checkMain, "main", nil, "five main numbers, comma separated")
	checkCmd.Flags().IntVar(&checkPB, "pb", 0, "powerball number")
	checkCmd.Flags().StringVar(&checkDate, "date", "", "draw date YYYY-MM-DD (default: latest cached draw)")
	checkCmd.Flags().Float64Var(&checkMultiplier, "multiplier", 0, "override the draw's Power Play multiplier")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kv, err := store.NewFromConfig(cfg.Storage)
	if err != nil {
		return err
	}
	draws := store.NewDrawStore(kv)
	defer draws.Close()

	svc, err := service.New(draws, picker.NewCryptoSource())
	if err != nil {
		return err
	}

	req := service.CheckRequest{
		Main:      checkMain,
		Powerball: checkPB,
		DrawDate:  checkDate,
	}
	if cmd.Flags().Changed("multiplier") {
		req.Multiplier = &checkMultiplier
	}

	result, err := svc.CheckPick(req)
	if err != nil {
		return err
	}

	draw, err := svc.DrawByDate(result.DrawDate)
	if err != nil {
		return err
	}
	winning := lottery.Pick{Main: draw.Main, Powerball: draw.Powerball}

	fmt.Printf("Draw %s: %s\n", result.DrawDate, winning.String())
	fmt.Printf("Pick:            %s\n", result.Pick.String())
	if result.PowerballMatch {
		fmt.Printf("Matched %d white + powerball\n", result.WhiteMatches)
	} else {
		fmt.Printf("Matched %d white\n", result.WhiteMatches)
	}
	fmt.Printf("Prize: %s", result.Prize.Base.String())
	if result.Prize.WithMultiplier != nil {
		fmt.Printf(" (with multiplier: %s)", result.Prize.WithMultiplier.String())
	}
	fmt.Println()
	if result.Odds != "" {
		fmt.Printf("Odds of this outcome: %s\n", result.Odds)
	}
	return nil
}
