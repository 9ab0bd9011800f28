package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.design/x/hotkey/mainthread"

	"go.klb.dev/snag/internal/capture"
	"go.klb.dev/snag/internal/clip"
	"go.klb.dev/snag/internal/coordinator"
	"go.klb.dev/snag/internal/cred"
	"go.klb.dev/snag/internal/input"
	"go.klb.dev/snag/internal/ipc"
	"go.klb.dev/snag/internal/message"
	"go.klb.dev/snag/internal/notify"
	"go.klb.dev/snag/internal/task"
	"go.klb.dev/snag/internal/trigger"
	"go.klb.dev/snag/internal/wire"
)

func newAgentCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run the resident capture agent (global hotkey + control socket)",
		Long: `Starts the snag agent. The agent registers the global hotkey and, on
each press, captures the current selection and creates a task from it.
It also listens on a local control socket so "snag grab" and
"snag status" can drive a running agent instead of starting their own
pipeline.

Config file search order:
  /etc/snag/snag.toml
  $HOME/.config/snag/snag.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → SNAG_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runAgent(v) },
	}

	f := cmd.Flags()
	f.String("hotkey", trigger.DefaultCombo, "global hotkey combo, e.g. ctrl+shift+s")
	f.String("notify", "desktop", "outcome reporting: desktop|log|off")
	addEndpointFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

// agent holds the wired pipeline plus the bits the control socket reports.
type agent struct {
	coord     *coordinator.Coordinator
	combo     trigger.Combo
	endpoint  string
	tokens    *cred.FileStore
	startedAt time.Time
}

func runAgent(v *viper.Viper) error {
	setupLogging(v)

	endpoint := v.GetString("endpoint")
	combo, err := trigger.Parse(v.GetString("hotkey"))
	if err != nil {
		return fmt.Errorf("hotkey: %w", err)
	}

	board, err := clip.New()
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	defer board.Close()

	tokens, err := cred.NewFileStore("")
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}

	trust := input.NewAuthorizer()
	caps := capture.New(board, input.NewSimulator(), trust, capture.Options{})
	coord := coordinator.New(caps, task.New(endpoint), tokens, notify.FromMode(v.GetString("notify")))

	a := &agent{
		coord:     coord,
		combo:     combo,
		endpoint:  endpoint,
		tokens:    tokens,
		startedAt: time.Now(),
	}

	slog.Info("snag agent starting",
		"version", Version,
		"hotkey", combo.String(),
		"endpoint", endpoint,
	)
	if endpoint == "" {
		slog.Warn("no endpoint configured, deliveries will fail (set endpoint in config or SNAG_ENDPOINT)")
	}
	if !trust.Trusted() {
		slog.Warn("input access not granted, prompting")
		trust.Prompt()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := ipc.Listen()
	if err != nil {
		slog.Warn("control socket unavailable", "err", err)
	} else {
		slog.Info("control socket listening", "path", ipc.SocketPath())
		go a.serveIPC(ln)
		go func() {
			<-ctx.Done()
			_ = ln.Close()
		}()
	}

	// The hotkey library requires the process main thread on darwin.
	var runErr error
	mainthread.Init(func() {
		src := trigger.New(combo)
		runErr = src.Run(ctx, func() {
			go coord.Trigger()
		})
	})
	if runErr != nil {
		return fmt.Errorf("hotkey: %w", runErr)
	}

	slog.Info("shutting down")
	caps.Wait() // let a deferred clipboard restore finish
	return nil
}

func (a *agent) serveIPC(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go a.handleConn(conn)
	}
}

func (a *agent) handleConn(conn net.Conn) {
	defer conn.Close()
	wc := wire.New(conn)
	wc.SetReadDeadline(10 * time.Second)

	msg, err := wc.ReadMsg()
	if err != nil {
		return
	}

	switch msg.Type {
	case message.TypeGrab:
		var rep coordinator.Report
		if msg.Print {
			rep = a.coord.CaptureOnly()
		} else {
			rep = a.coord.Trigger()
		}
		reply := &message.Message{Type: message.TypeGrabResult}
		switch {
		case rep.Dropped:
			reply.Detail = "an operation is already in flight"
		case rep.Capture.Kind != capture.Success:
			reply.Result = rep.Capture.Kind.String()
		case msg.Print:
			reply.OK = true
			reply.Result = rep.Capture.Kind.String()
			reply.Text = rep.Capture.Text
		case rep.Outcome == nil:
			// Captured fine but delivery never ran: no stored token.
			reply.Result = rep.Capture.Kind.String()
			reply.Detail = "no API token configured (run: snag token set)"
		case rep.Outcome.Kind != task.Created:
			reply.Result = rep.Capture.Kind.String()
			reply.Detail = rep.Outcome.Detail
		default:
			reply.OK = true
			reply.Result = rep.Capture.Kind.String()
		}
		_ = wc.WriteMsg(reply)

	case message.TypeStatus:
		tok, _ := a.tokens.Read()
		stats := a.coord.Stats()
		_ = wc.WriteMsg(&message.Message{
			Type: message.TypeStatusResponse,
			Status: &message.AgentStatus{
				Version:   Version,
				State:     a.coord.State().String(),
				Hotkey:    a.combo.String(),
				Endpoint:  a.endpoint,
				HasToken:  tok != "",
				StartedAt: a.startedAt,
				Triggers:  stats.Triggers,
				Dropped:   stats.Dropped,
				Captured:  stats.Captured,
				Empty:     stats.Empty,
				Timeouts:  stats.Timeouts,
				Denied:    stats.Denied,
				Created:   stats.Created,
				Failed:    stats.Failed,
			},
		})

	default:
		_ = wc.WriteMsg(&message.Message{
			Type:  message.TypeError,
			Error: fmt.Sprintf("unknown message type %q", msg.Type),
		})
	}
}
