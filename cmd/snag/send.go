package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snag/internal/cred"
	"go.klb.dev/snag/internal/task"
)

func newSendCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "send [text]",
		Short: "Create a task from explicit text (argument or stdin)",
		Long: `Creates a task from the given text without touching the clipboard or
the foreground application. With no argument the text is read from stdin,
so it composes with pipes:

  echo "call the dentist" | snag send`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, args []string) error { return runSend(v, args) },
	}

	f := cmd.Flags()
	f.String("token", "", "API token (default: stored credential)")
	addEndpointFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runSend(v *viper.Viper, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to send")
	}

	endpoint, err := requireEndpoint(v)
	if err != nil {
		return err
	}

	token := v.GetString("token")
	if token == "" {
		store, err := cred.NewFileStore("")
		if err != nil {
			return fmt.Errorf("credential store: %w", err)
		}
		if token, err = store.Read(); err != nil {
			return fmt.Errorf("credential store: %w", err)
		}
	}
	if token == "" {
		return fmt.Errorf("no API token configured (run: snag token set)")
	}

	out := task.New(endpoint).Create(context.Background(), text, token)
	if out.Kind != task.Created {
		return fmt.Errorf("send: %s", out.Detail)
	}
	fmt.Println("task created")
	return nil
}
