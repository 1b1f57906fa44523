package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strataforge/strata/internal/adapters/file"
	"github.com/strataforge/strata/internal/adapters/redis"
)

var (
	syncRedisAddr     string
	syncRedisPassword string
	syncRedisDB       int
	syncPrefix        string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the scene's layers to a Redis store",
	Long: `Copy every layer of the scene directory into a Redis layer store, so
other sessions can load shared scene description without access to the
local filesystem.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		ctx := cmd.Context()

		st, err := file.LoadStage(ctx, dir)
		if err != nil {
			return err
		}

		opts := []redis.Option{}
		if syncPrefix != "" {
			opts = append(opts, redis.WithPrefix(syncPrefix))
		}
		store := redis.New(syncRedisAddr, syncRedisPassword, syncRedisDB, opts...)
		defer store.Close()

		for _, l := range st.Layers() {
			if err := store.Save(ctx, l.Identifier(), l); err != nil {
				return fmt.Errorf("failed to sync layer %s: %w", l.Identifier(), err)
			}
		}
		fmt.Printf("synced %d layers to %s\n", len(st.Layers()), syncRedisAddr)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncRedisAddr, "redis", "localhost:6379", "Redis address")
	syncCmd.Flags().StringVar(&syncRedisPassword, "redis-password", "", "Redis password")
	syncCmd.Flags().IntVar(&syncRedisDB, "redis-db", 0, "Redis database")
	syncCmd.Flags().StringVar(&syncPrefix, "prefix", "", "Key prefix for stored layers")
	rootCmd.AddCommand(syncCmd)
}
