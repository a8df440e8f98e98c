package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"melodex/config"
	"melodex/core/spotify"

	"github.com/spf13/cobra"
)

var spotifyCmd = &cobra.Command{
	Use:   "spotify-check",
	Short: "Verify provider credentials by running a one-off search",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		client := spotify.NewClient(
			cfg.SpotifyAPIURL, cfg.SpotifyTokenURL,
			cfg.SpotifyClientID, cfg.SpotifyClientSecret,
		)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		result, err := client.Search(ctx, "artist:Miles Davis", []string{spotify.KindArtist}, 0, 1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "provider check failed: %v\n", err)
			os.Exit(1)
		}
		if result.Artists != nil && len(result.Artists.Items) > 0 {
			fmt.Printf("provider ok, sample artist: %s\n", result.Artists.Items[0].Name)
			return
		}
		fmt.Println("provider ok (empty result)")
	},
}

func init() {
	rootCmd.AddCommand(spotifyCmd)
}
