package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"melodex/config"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis-check",
	Short: "Verify Redis connectivity with the configured settings",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		addr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			fmt.Fprintf(os.Stderr, "redis ping failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("redis ok: %s\n", addr)
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
