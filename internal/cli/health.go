package cli

import (
	"context"
	"fmt"

	"github.com/flightctl/romannumeral/internal/cli/display"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const readyStatus = "Ready"

type HealthOptions struct {
	GlobalOptions
}

func DefaultHealthOptions() *HealthOptions {
	return &HealthOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdHealth() *cobra.Command {
	o := DefaultHealthOptions()
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the liveness and readiness of the numeral service.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			ctx, cancel := o.WithTimeout(cmd.Context())
			defer cancel()
			return o.Run(ctx, args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *HealthOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
}

// Run prints both probes and fails when either of them did.
func (o *HealthOptions) Run(ctx context.Context, args []string) error {
	c, err := o.BuildClient()
	if err != nil {
		return err
	}

	status := &display.HealthStatus{}
	liveness, liveErr := c.Health(ctx)
	if liveErr != nil {
		status.Liveness = liveErr.Error()
	} else {
		status.Liveness = liveness
	}
	readyErr := c.Ready(ctx)
	if readyErr != nil {
		status.Readiness = readyErr.Error()
	} else {
		status.Readiness = readyStatus
	}

	if err := o.print(status); err != nil {
		return err
	}
	if liveErr != nil || readyErr != nil {
		return fmt.Errorf("service is not healthy")
	}
	return nil
}
