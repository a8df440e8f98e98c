package cmd

import (
	"log"
	"os"

	"melodex/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := server.Start(); err != nil {
			log.Printf("server exited with error: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
