package main

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
)

var (
	dumpDir    string
	dumpPrefix string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the raw contents of a badger draw cache",
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpDir, "dir", "", "badger directory (default: storage.directory from config)")
	dumpCmd.Flags().StringVar(&dumpPrefix, "prefix", "", "only keys with this prefix (e.g. draw:, jackpot:)")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	dir := dumpDir
	if dir == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.Storage.Directory
	}

	// Read-only open so a running server keeps its lock.
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithReadOnly(true)

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open badger at %s: %w", dir, err)
	}
	defer db.Close()

	fmt.Printf("=== Draw cache contents (%s) ===\n\n", dir)

	keyCount := 0
	err = db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchSize = 10
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())
			if dumpPrefix != "" && !strings.HasPrefix(key, dumpPrefix) {
				continue
			}

			err := item.Value(func(val []byte) error {
				keyCount++
				fmt.Printf("Key:   %s\n", key)
				fmt.Printf("Value: %s\n", string(val))
				fmt.Printf("Size:  %d bytes\n", len(val))
				fmt.Println("---")
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterate draw cache: %w", err)
	}

	fmt.Printf("\nTotal keys found: %d\n", keyCount)
	return nil
}
