// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-browser/internal/tracking"
	"github.com/pdiddy/paper-browser/pkg/types"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Moderate paper upload requests",
	Long: `Requests manages the moderation queue for paper upload requests.
New requests enter the queue as pending; approve and reject move them
through the workflow.`,
}

// --- list subcommand ---

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upload requests, newest first",
	RunE:  runRequestsList,
}

func runRequestsList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")

	store, err := tracking.NewStore(loadConfig().Tracking)
	if err != nil {
		return err
	}
	defer store.Close()

	requests, err := store.ListRequests(context.Background(), types.RequestStatus(status))
	if err != nil {
		return err
	}

	if len(requests) == 0 {
		fmt.Println("No upload requests.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-19s  %-20s  %-25s  %-10s  %s\n",
		"ID", "Filed", "Name", "Institution", "Status", "Paper")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range requests {
		name := r.RequestName
		if len(name) > 20 {
			name = name[:17] + "..."
		}
		institution := r.Institution
		if len(institution) > 25 {
			institution = institution[:22] + "..."
		}
		info := r.PaperInfo
		if len(info) > 30 {
			info = info[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-19s  %-20s  %-25s  %-10s  %s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), name, institution, r.Status, info)
	}
	fmt.Fprintf(os.Stdout, "\n%d requests\n", len(requests))
	return nil
}

// --- approve / reject subcommands ---

var requestsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve an upload request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRequestStatus(args[0], types.StatusApproved)
	},
}

var requestsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an upload request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRequestStatus(args[0], types.StatusRejected)
	},
}

func setRequestStatus(rawID string, status types.RequestStatus) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid request id %q", rawID)
	}

	store, err := tracking.NewStore(loadConfig().Tracking)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetStatus(context.Background(), id, status); err != nil {
		return err
	}
	fmt.Printf("Request %d marked %s.\n", id, status)
	return nil
}

func init() {
	requestsListCmd.Flags().String("status", "", "filter by status: pending, approved, or rejected")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsApproveCmd)
	requestsCmd.AddCommand(requestsRejectCmd)

	rootCmd.AddCommand(requestsCmd)
}
