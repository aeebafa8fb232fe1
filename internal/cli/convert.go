package cli

import (
	"context"
	"fmt"
	"strconv"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/pkg/roman"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentConversions bounds the requests issued by a single convert.
const maxConcurrentConversions = 4

type ConvertOptions struct {
	GlobalOptions

	values []int
}

func DefaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdConvert() *cobra.Command {
	o := DefaultConvertOptions()
	cmd := &cobra.Command{
		Use:     "convert N [N...]",
		Short:   "Convert one or more integers to Roman numerals.",
		Example: "  romanctl convert 1 4 1994",
		Args:    cobra.MinimumNArgs(1),
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

func (o *ConvertOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
}

func (o *ConvertOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.values = make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%q is not an integer", arg)
		}
		o.values = append(o.values, n)
	}
	return nil
}

func (o *ConvertOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	for _, n := range o.values {
		if err := roman.ValidateInput(n); err != nil {
			return err
		}
	}
	return nil
}

func (o *ConvertOptions) Run(ctx context.Context, args []string) error {
	c, err := o.BuildClient()
	if err != nil {
		return err
	}

	results := make([]api.ConversionResponse, len(o.values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentConversions)
	for i, n := range o.values {
		g.Go(func() error {
			resp, err := c.Convert(ctx, n)
			if err != nil {
				return fmt.Errorf("converting %d: %w", n, err)
			}
			results[i] = *resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(results) == 1 {
		return o.print(&results[0])
	}
	return o.print(&api.RangeConversionResponse{Conversions: results})
}
