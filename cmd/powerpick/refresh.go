package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lottolab/powerpick/internal/events"
	"github.com/lottolab/powerpick/internal/feed"
	"github.com/lottolab/powerpick/internal/lottery"
	"github.com/lottolab/powerpick/internal/refresher"
	"github.com/lottolab/powerpick/internal/store"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch new draws from the results feed and exit",
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
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

	client := feed.NewClient(cfg.Feed)
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ref := refresher.New(client, draws, events.NewNoop(), cfg.Refresh)
	result, err := ref.RefreshOnce(ctx)
	if err != nil {
		return err
	}

	total, err := draws.Count()
	if err != nil {
		return err
	}

	fmt.Printf("Fetched %d rows, %d new draws\n", result.Fetched, len(result.Added))
	for _, draw := range result.Added {
		line := lottery.Pick{Main: draw.Main, Powerball: draw.Powerball}
		fmt.Printf("  %s  %s\n", draw.DateKey(), line.String())
	}
	if result.JackpotUpdated {
		jackpot, err := draws.GetJackpot()
		if err == nil {
			fmt.Printf("Jackpot estimate: $%s (cash $%s)\n", jackpot.Annuity.String(), jackpot.Cash.String())
		}
	}
	fmt.Printf("Cache now holds %d draws\n", total)
	return nil
}
