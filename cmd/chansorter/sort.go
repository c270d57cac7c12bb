package main

import (
	"fmt"
	"os"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	chansorter "github.com/UberPyro/ChannelSorter2"
	"github.com/UberPyro/ChannelSorter2/internal/lease"
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Run one full sorting pass",
	Long: `Flattens the registered project categories, computes balanced alphabetic
boundaries, relabels the categories and moves every out-of-place channel to
its sorted slot. A JetStream KV lease serializes runs across instances.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		nc, err := connect()
		if err != nil {
			return err
		}
		defer nc.Close()

		ctx := cmd.Context()

		js, err := jetstream.New(nc)
		if err != nil {
			return fmt.Errorf("open JetStream: %w", err)
		}
		kv, err := lease.EnsureBucket(ctx, js, cfg.Sorter.Lease.Bucket, cfg.Sorter.Lease.TTL)
		if err != nil {
			return err
		}

		hostname, _ := os.Hostname()
		owner := fmt.Sprintf("%s-%d", hostname, os.Getpid())
		lock := lease.New(kv, cfg.Sorter.Lease.Key, owner)

		sorter, err := newSorter(nc, chansorter.WithLock(lock))
		if err != nil {
			return err
		}

		stats, err := sorter.Sort(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("sorted %d channels across %d categories: %d renames, %d moves\n",
			stats.Channels, stats.Categories, stats.Renames, stats.Moves)

		return nil
	},
}
