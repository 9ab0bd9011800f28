package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"go.klb.dev/snag/internal/ipc"
	"go.klb.dev/snag/internal/message"
	"go.klb.dev/snag/internal/wire"
)

func newStatusCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of a running agent",
		Long: `Queries the running snag agent over the control socket and prints its
state, configuration, and operation counters.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error { return runStatus(jsonOut) },
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output raw JSON")
	return cmd
}

func runStatus(jsonOut bool) error {
	conn, err := ipc.Dial()
	if err != nil {
		return fmt.Errorf("no agent running (start one with: snag agent)")
	}
	wc := wire.New(conn)
	defer wc.Close()

	if err := wc.WriteMsg(&message.Message{Type: message.TypeStatus}); err != nil {
		return fmt.Errorf("request: %w", err)
	}
	wc.SetReadDeadline(5 * time.Second)
	reply, err := wc.ReadMsg()
	if err != nil {
		return fmt.Errorf("reply: %w", err)
	}
	if reply.Type != message.TypeStatusResponse || reply.Status == nil {
		return fmt.Errorf("unexpected reply type %q", reply.Type)
	}

	if jsonOut {
		enc, _ := json.MarshalIndent(reply.Status, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	printStatus(reply.Status)
	return nil
}

func printStatus(st *message.AgentStatus) {
	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Agent:\tsnag %s\n", st.Version)
	fmt.Fprintf(w, "State:\t%s\n", st.State)
	fmt.Fprintf(w, "Hotkey:\t%s\n", st.Hotkey)
	endpoint := st.Endpoint
	if endpoint == "" {
		endpoint = "(not configured)"
	}
	fmt.Fprintf(w, "Endpoint:\t%s\n", endpoint)
	token := "missing"
	if st.HasToken {
		token = "stored"
	}
	fmt.Fprintf(w, "Token:\t%s\n", token)
	if !st.StartedAt.IsZero() {
		fmt.Fprintf(w, "Started:\t%s (%s)\n", st.StartedAt.UTC().Format(time.RFC3339), fmtAge(st.StartedAt))
	}
	fmt.Fprintf(w, "Triggers:\t%d (%d dropped)\n", st.Triggers, st.Dropped)
	fmt.Fprintf(w, "Captures:\t%d ok, %d empty, %d timed out, %d denied\n",
		st.Captured, st.Empty, st.Timeouts, st.Denied)
	fmt.Fprintf(w, "Tasks:\t%d created, %d failed\n", st.Created, st.Failed)
	_ = w.Flush()
}

func fmtAge(t time.Time) string {
	age := time.Since(t).Round(time.Second)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	return fmt.Sprintf("%dh%dm ago", int(age.Hours()), int(age.Minutes())%60)
}
