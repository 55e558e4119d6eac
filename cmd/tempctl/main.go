// tempctl is the operator CLI for the offline edge agent. It talks to the
// agent's local admin endpoints to inspect the pending-action queue and
// trigger sync passes.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var agentAddr string

var rootCmd = &cobra.Command{
	Use:   "tempctl",
	Short: "Inspect and control a temp-tracker edge agent",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&agentAddr, "agent", "http://localhost:8787", "base URL of the edge agent")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var ctlClient = &http.Client{Timeout: 30 * time.Second}

func getJSON(path string, out any) error {
	resp, err := ctlClient.Get(agentAddr + path)
	if err != nil {
		return fmt.Errorf("cannot reach agent at %s: %w", agentAddr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agent answered %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func postJSON(path string, out any) error {
	resp, err := ctlClient.Post(agentAddr+path, "application/json", nil)
	if err != nil {
		return fmt.Errorf("cannot reach agent at %s: %w", agentAddr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agent answered %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
