// Carikbot - Multi-channel chat bot with a middleware dispatch core
// License: MIT
//
// Copyright (c) 2026 Carikbot contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/carikbot/cmd/carikbot/internal"
	"github.com/tinyland-inc/carikbot/cmd/carikbot/internal/onboard"
	"github.com/tinyland-inc/carikbot/cmd/carikbot/internal/run"
	"github.com/tinyland-inc/carikbot/cmd/carikbot/internal/version"
)

func NewCarikbotCommand() *cobra.Command {
	short := fmt.Sprintf("%s carikbot - Chat Bot Gateway v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "carikbot",
		Short:   short,
		Example: "carikbot run",
	}

	cmd.AddCommand(
		onboard.NewOnboardCommand(),
		run.NewRunCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewCarikbotCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
