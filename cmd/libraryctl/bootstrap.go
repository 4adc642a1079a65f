package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AntonStoeckl/library-circulation/circulation/bootstrap"
	"github.com/AntonStoeckl/library-circulation/circulation/shared/shell/config"
)

var errPasswordMismatch = errors.New("passwords do not match")

func newBootstrapCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the event store schema and seed the first librarian account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd, map[string]string{
				"name":     "bootstrap.name",
				"email":    "bootstrap.email",
				"password": "bootstrap.password",
			})
			if err != nil {
				return err
			}

			return runBootstrap(cmd.Context(), cmd, cfg)
		},
	}

	cmd.Flags().String("name", "", "full name of the librarian")
	cmd.Flags().String("email", "", "email of the librarian")
	cmd.Flags().String("password", "", "password of the librarian, prompted for when empty")

	return cmd
}

func runBootstrap(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	logger := config.NewLogger(cfg.Log, os.Stderr)

	es, err := config.OpenEventStore(ctx, cfg, config.Observers{Logger: logger})
	if err != nil {
		return err
	}
	defer func() { _ = es.Close() }()

	password := cfg.Bootstrap.Password
	if password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		if password, err = promptPassword(cmd); err != nil {
			return err
		}
	}

	result, err := bootstrap.Run(ctx, es, bootstrap.Librarian{
		FullName: cfg.Bootstrap.FullName,
		Email:    cfg.Bootstrap.Email,
		Password: password,
	}, time.Now())
	if err != nil {
		return err
	}

	if result.Created {
		cmd.Printf("librarian %s created with id %s\n", cfg.Bootstrap.Email, result.UserID)
	} else {
		cmd.Printf("account %s already exists, left untouched\n", cfg.Bootstrap.Email)
	}

	return nil
}

func promptPassword(cmd *cobra.Command) (string, error) {
	read := func(prompt string) (string, error) {
		cmd.Print(prompt)
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}

		return strings.TrimSpace(string(b)), nil
	}

	password, err := read("Librarian password: ")
	if err != nil {
		return "", err
	}

	confirmation, err := read("Repeat password: ")
	if err != nil {
		return "", err
	}

	if password != confirmation {
		return "", errPasswordMismatch
	}

	return password, nil
}
