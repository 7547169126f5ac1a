package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lottolab/powerpick/internal/config"
	"github.com/lottolab/powerpick/internal/lottery"
	"github.com/lottolab/powerpick/internal/store"
)

var (
	migrateDestType string
	migrateDestDir  string
	migrateDestAddr string
	migrateDryRun   bool
	migrateVerify   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the draw cache into another storage backend",
	Long: `Copy all cached draws and the jackpot estimate from the configured
storage into a destination store. The redis password for the destination
is read from POWERPICK_DEST_REDIS_PASSWORD.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDestType, "dest-type", "", "destination storage type (badger | redis)")
	migrateCmd.Flags().StringVar(&migrateDestDir, "dest-dir", "", "destination badger directory")
	migrateCmd.Flags().StringVar(&migrateDestAddr, "dest-addr", "", "destination redis address")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "print what would be copied without writing")
	migrateCmd.Flags().BoolVar(&migrateVerify, "verify", false, "read back every draw from the destination")
	rootCmd.AddCommand(migrateCmd)
}

func destConfig() (config.StorageConfig, error) {
	dest := config.StorageConfig{Type: migrateDestType}
	switch migrateDestType {
	case config.StorageBadger:
		if migrateDestDir == "" {
			return dest, fmt.Errorf("--dest-dir is required for a badger destination")
		}
		dest.Directory = migrateDestDir
	case config.StorageRedis:
		if migrateDestAddr == "" {
			return dest, fmt.Errorf("--dest-addr is required for a redis destination")
		}
		dest.Redis.Addr = migrateDestAddr
		dest.Redis.Password = os.Getenv("POWERPICK_DEST_REDIS_PASSWORD")
	default:
		return dest, fmt.Errorf("unsupported destination type: %q", migrateDestType)
	}
	return dest, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	destCfg, err := destConfig()
	if err != nil {
		return err
	}

	srcKV, err := store.NewFromConfig(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open source store: %w", err)
	}
	src := store.NewDrawStore(srcKV)
	defer src.Close()

	draws, err := src.AllDraws()
	if err != nil {
		return err
	}

	fmt.Printf("Source:      %s (%d draws)\n", cfg.Storage.Type, len(draws))
	fmt.Printf("Destination: %s\n", migrateDestType)

	if migrateDryRun {
		fmt.Printf("\nDRY RUN - draws that would be copied:\n")
		for i, draw := range draws {
			fmt.Printf("  %s\n", draw.DateKey())
			if i >= 9 && len(draws) > 10 {
				fmt.Printf("  ... and %d more\n", len(draws)-10)
				break
			}
		}
		return nil
	}

	destKV, err := store.NewFromConfig(destCfg)
	if err != nil {
		return fmt.Errorf("open destination store: %w", err)
	}
	dest := store.NewDrawStore(destKV)
	defer dest.Close()

	start := time.Now()
	added, err := dest.SaveDraws(draws)
	if err != nil {
		return fmt.Errorf("copy draws: %w", err)
	}

	if migrateVerify {
		for _, want := range draws {
			got, err := dest.GetDraw(want.Date)
			if err != nil {
				return fmt.Errorf("verify %s: %w", want.DateKey(), err)
			}
			if !sameDraw(*got, want) {
				return fmt.Errorf("verify %s: destination draw differs", want.DateKey())
			}
		}
	}

	jackpotCopied := false
	if jackpot, err := src.GetJackpot(); err == nil {
		if err := dest.SaveJackpot(*jackpot); err != nil {
			return fmt.Errorf("copy jackpot: %w", err)
		}
		jackpotCopied = true
	}

	duration := time.Since(start)
	fmt.Printf("\nCopied %d draws (%d new in destination) in %s\n",
		len(draws), len(added), duration.Round(time.Millisecond))
	if jackpotCopied {
		fmt.Println("Jackpot estimate copied")
	}
	if migrateVerify {
		fmt.Println("Verification passed")
	}
	if duration > 0 && len(draws) > 0 {
		fmt.Printf("Rate: %.1f draws/sec\n", float64(len(draws))/duration.Seconds())
	}
	return nil
}

func sameDraw(a, b lottery.Draw) bool {
	if !a.Date.Equal(b.Date) || a.Powerball != b.Powerball || a.Multiplier != b.Multiplier {
		return false
	}
	if len(a.Main) != len(b.Main) {
		return false
	}
	for i := range a.Main {
		if a.Main[i] != b.Main[i] {
			return false
		}
	}
	return true
}
