package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.klb.dev/snag/internal/cred"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored API token",
		Long: `The API token is sealed at rest under $HOME/.config/snag/ and used as
the bearer credential when creating tasks.`,
	}
	cmd.AddCommand(newTokenSetCmd(), newTokenShowCmd(), newTokenClearCmd())
	return cmd
}

func openStore() (*cred.FileStore, error) {
	store, err := cred.NewFileStore("")
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return store, nil
}

func newTokenSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Store the API token (prompts, or reads stdin when piped)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			token, err := readToken()
			if err != nil {
				return err
			}
			if token == "" {
				return fmt.Errorf("empty token")
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Write(token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Println("token stored")
			return nil
		},
	}
}

func readToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "API token: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newTokenShowCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show whether a token is stored",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			token, err := store.Read()
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			if token == "" {
				fmt.Println("no token stored")
				return nil
			}
			if reveal {
				fmt.Println(token)
				return nil
			}
			fmt.Printf("token stored (%s…, %d chars)\n", prefix(token, 4), len(token))
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the token in full")
	return cmd
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func newTokenClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored token",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			fmt.Println("token cleared")
			return nil
		},
	}
}
