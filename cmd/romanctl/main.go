package main

import (
	"context"
	"os"

	"github.com/flightctl/romannumeral/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewRomanctlCommand()
	if err := command.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func NewRomanctlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "romanctl",
		Short: "romanctl converts integers to Roman numerals using the numeral service",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdConvert())
	cmd.AddCommand(cli.NewCmdRange())
	cmd.AddCommand(cli.NewCmdHealth())
	cmd.AddCommand(cli.NewCmdVersion())
	return cmd
}
