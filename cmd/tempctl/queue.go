package main

import (
	"fmt"

	"github.com/songphoh/temp-trackerV3/internal/offline"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queueCmd)
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List pending offline actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		var queue offline.QueueResponse
		if err := getJSON("/agent/queue", &queue); err != nil {
			return err
		}

		if len(queue.Actions) == 0 {
			fmt.Println("Queue is empty.")
			return nil
		}

		for _, action := range queue.Actions {
			fmt.Printf("%s  %-9s  enqueued %s\n",
				action.ID,
				action.Kind,
				action.EnqueuedAt.Format("2006-01-02 15:04:05"),
			)
		}
		fmt.Printf("%d pending action(s)\n", len(queue.Actions))
		return nil
	},
}
