package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lottolab/powerpick/internal/picker"
	"github.com/lottolab/powerpick/internal/service"
	"github.com/lottolab/powerpick/internal/store"
	"github.com/lottolab/powerpick/pkg/common/logger"
)

var (
	pickCount      int
	pickRandomness float64
	pickLockMain   []int
	pickLockPB     []int
	pickSeed       uint64
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Generate weighted picks from the cached draw history",
	RunE:  runPick,
}

func init() {
	pickCmd.Flags().IntVar(&pickCount, "count", 1, "number of lines to generate")
	pickCmd.Flags().Float64Var(&pickRandomness, "randomness", 50, "uniform blend percentage (0 = pure history weights, 100 = pure uniform)")
	pickCmd.Flags().IntSliceVar(&pickLockMain, "lock", nil, "main numbers every line must include")
	pickCmd.Flags().IntSliceVar(&pickLockPB, "lock-pb", nil, "powerball pool to choose from")
	pickCmd.Flags().Uint64Var(&pickSeed, "seed", 0, "deterministic seed (0 = crypto randomness)")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
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

	src := picker.NewCryptoSource()
	if cmd.Flags().Changed("seed") {
		src = picker.NewSeededSource(pickSeed)
	}

	svc, err := service.New(draws, src)
	if err != nil {
		return err
	}

	batch := svc.GeneratePicks(service.GenerateRequest{
		Count:           pickCount,
		Randomness:      pickRandomness,
		MainLocked:      pickLockMain,
		PowerballLocked: pickLockPB,
	})

	total, err := svc.Count()
	if err != nil {
		return err
	}
	if total == 0 {
		logger.Warn("Draw cache is empty, weights are uniform", "hint", "run 'powerpick refresh' first")
	}

	fmt.Printf("Batch %s (randomness %.0f%%, %d draws in history)\n", batch.ID, batch.Randomness, total)
	for i, pick := range batch.Picks {
		fmt.Printf("%3d) %s\n", i+1, pick.String())
	}
	return nil
}
