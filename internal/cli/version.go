package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/flightctl/romannumeral/internal/cli/display"
	"github.com/flightctl/romannumeral/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	versionTimeout    = 5 * time.Second
	errReadingVersion = "reading service version"
)

type VersionOptions struct {
	GlobalOptions
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print romanctl and service version information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
}

// Run never fails because the server is unreachable; the error is reported
// in place of the server version.
func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	info := &display.VersionInfo{Client: version.Get().String()}

	if err := o.fillServerVersion(ctx, info); err != nil {
		info.Error = fmt.Errorf("%s: %w", errReadingVersion, err).Error()
	}
	return o.print(info)
}

func (o *VersionOptions) fillServerVersion(ctx context.Context, info *display.VersionInfo) error {
	c, err := o.BuildClient()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	v, err := c.Version(ctx)
	if err != nil {
		return err
	}
	info.Server = v.Version
	if err := version.NewCompatibilityChecker().CheckCompatibility(v); err != nil {
		info.Warning = err.Error()
	}
	return nil
}
