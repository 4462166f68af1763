package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Fatalf("weather-buddy: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "buddy",
		Short:         "Weather and local directory assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newChatCommand(), newEvalCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := initializeServer()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Run(cmd.Context())
		},
	}
}

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat on the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chat, cleanup, err := initializeChat()
			if err != nil {
				return err
			}
			defer cleanup()
			err = chat.Run(cmd.Context(), os.Stdin, os.Stdout)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newEvalCommand() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run the weather agent over a prompt set and publish a CSV report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, cleanup, err := initializeEvaluation()
			if err != nil {
				return err
			}
			defer cleanup()
			return job.run(cmd.Context(), input, output)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSONL prompt file (overrides eval.input)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV report path (overrides eval.output)")
	return cmd
}
