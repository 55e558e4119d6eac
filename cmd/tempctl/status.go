package main

import (
	"fmt"

	"github.com/songphoh/temp-trackerV3/internal/offline"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show agent connectivity and queue depth",
	RunE: func(cmd *cobra.Command, args []string) error {
		var status offline.StatusResponse
		if err := getJSON("/agent/status", &status); err != nil {
			return err
		}

		state := "offline"
		if status.Online {
			state = "online"
		}
		fmt.Printf("Upstream:    %s\n", state)
		fmt.Printf("Queue depth: %d\n", status.QueueDepth)

		if status.LastDrain != nil {
			fmt.Printf("Last drain:  %s (attempted %d, succeeded %d, failed %d)\n",
				status.LastDrain.StartedAt.Format("2006-01-02 15:04:05"),
				status.LastDrain.Attempted,
				status.LastDrain.Succeeded,
				status.LastDrain.Failed,
			)
		} else {
			fmt.Println("Last drain:  (none yet)")
		}
		return nil
	},
}
