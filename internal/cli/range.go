package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/flightctl/romannumeral/pkg/roman"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type RangeOptions struct {
	GlobalOptions

	min, max int
}

func DefaultRangeOptions() *RangeOptions {
	return &RangeOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdRange() *cobra.Command {
	o := DefaultRangeOptions()
	cmd := &cobra.Command{
		Use:     "range MIN MAX",
		Short:   "Convert every integer from MIN to MAX inclusive.",
		Example: "  romanctl range 1 10 -o json",
		Args:    cobra.ExactArgs(2),
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

func (o *RangeOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
}

func (o *RangeOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	var err error
	if o.min, err = strconv.Atoi(args[0]); err != nil {
		return fmt.Errorf("MIN %q is not an integer", args[0])
	}
	if o.max, err = strconv.Atoi(args[1]); err != nil {
		return fmt.Errorf("MAX %q is not an integer", args[1])
	}
	return nil
}

func (o *RangeOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return roman.ValidateRange(o.min, o.max)
}

func (o *RangeOptions) Run(ctx context.Context, args []string) error {
	c, err := o.BuildClient()
	if err != nil {
		return err
	}
	resp, err := c.ConvertRange(ctx, o.min, o.max)
	if err != nil {
		return fmt.Errorf("converting range %d-%d: %w", o.min, o.max, err)
	}
	return o.print(resp)
}
