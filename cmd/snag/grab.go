package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snag/internal/capture"
	"go.klb.dev/snag/internal/clip"
	"go.klb.dev/snag/internal/coordinator"
	"go.klb.dev/snag/internal/cred"
	"go.klb.dev/snag/internal/input"
	"go.klb.dev/snag/internal/ipc"
	"go.klb.dev/snag/internal/message"
	"go.klb.dev/snag/internal/notify"
	"go.klb.dev/snag/internal/task"
	"go.klb.dev/snag/internal/wire"
)

// grabReplyTimeout bounds the wait for a running agent to finish one
// capture-and-deliver cycle (2s capture deadline + delivery + slack).
const grabReplyTimeout = 30 * time.Second

func newGrabCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "grab",
		Short: "Capture the current selection once and create a task from it",
		Long: `Captures the currently selected text and creates a task from it.

If a snag agent is running, the capture is delegated to it over the
control socket. Otherwise the pipeline runs locally in this process.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runGrab(v) },
	}

	f := cmd.Flags()
	f.Bool("print", false, "print the captured text to stdout instead of creating a task")
	f.String("notify", "log", "outcome reporting when running locally: desktop|log|off")
	addEndpointFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runGrab(v *viper.Viper) error {
	setupLogging(v)
	printText := v.GetBool("print")

	if ipc.IsRunning() {
		reply, err := grabViaAgent(printText)
		if err == nil {
			// The agent handled the request; its verdict is final.
			return reportGrab(reply, printText)
		}
		slog.Warn("agent unreachable, running locally", "err", err)
	}
	return grabLocal(v, printText)
}

// grabViaAgent asks a running agent to perform the capture. An error means
// the agent could not be reached, not that the capture failed.
func grabViaAgent(printText bool) (*message.Message, error) {
	conn, err := ipc.Dial()
	if err != nil {
		return nil, err
	}
	wc := wire.New(conn)
	defer wc.Close()

	if err := wc.WriteMsg(&message.Message{Type: message.TypeGrab, Print: printText}); err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}

	wc.SetReadDeadline(grabReplyTimeout)
	reply, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}
	return reply, nil
}

func reportGrab(reply *message.Message, printText bool) error {
	switch reply.Type {
	case message.TypeGrabResult:
		if !reply.OK {
			switch {
			case reply.Result == "":
				return fmt.Errorf("grab failed: %s", reply.Detail)
			case reply.Detail != "":
				return fmt.Errorf("grab failed: %s (%s)", reply.Result, reply.Detail)
			default:
				return fmt.Errorf("grab failed: %s", reply.Result)
			}
		}
		if printText {
			fmt.Println(reply.Text)
		}
		return nil
	case message.TypeError:
		return fmt.Errorf("agent: %s", reply.Error)
	default:
		return fmt.Errorf("unexpected reply type %q", reply.Type)
	}
}

// grabLocal runs the whole pipeline in-process, no agent required.
func grabLocal(v *viper.Viper, printText bool) error {
	board, err := clip.New()
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	defer board.Close()

	tokens, err := cred.NewFileStore("")
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}

	caps := capture.New(board, input.NewSimulator(), input.NewAuthorizer(), capture.Options{})
	coord := coordinator.New(caps, task.New(v.GetString("endpoint")), tokens, notify.FromMode(v.GetString("notify")))

	var rep coordinator.Report
	if printText {
		rep = coord.CaptureOnly()
	} else {
		rep = coord.Trigger()
	}
	caps.Wait() // the deferred clipboard restore must run before we exit

	if rep.Capture.Kind != capture.Success {
		return fmt.Errorf("grab failed: %s", rep.Capture.Kind)
	}
	if printText {
		fmt.Println(rep.Capture.Text)
		return nil
	}
	if rep.Outcome == nil {
		return fmt.Errorf("no API token configured (run: snag token set)")
	}
	if rep.Outcome.Kind != task.Created {
		return fmt.Errorf("delivery failed: %s", rep.Outcome.Detail)
	}
	return nil
}
