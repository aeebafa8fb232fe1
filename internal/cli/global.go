package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/flightctl/romannumeral/internal/cli/display"
	"github.com/flightctl/romannumeral/internal/client"
	"github.com/flightctl/romannumeral/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	defaultConfigFileName = "client"
	defaultConfigFileExt  = "yaml"
	defaultServer         = "http://localhost:8080"
)

type GlobalOptions struct {
	ConfigFilePath string
	ConfigDir      string
	Server         string
	RequestTimeout int
	Output         string

	out io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ConfigFilePath: ConfigFilePath(""),
		RequestTimeout: 0,
		Output:         string(display.TableFormat),
		out:            os.Stdout,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigDir, "config-dir", o.ConfigDir, "Specify the directory for client configuration files.")
	fs.StringVar(&o.Server, "server", o.Server, fmt.Sprintf("Base URL of the numeral API, overrides the client config (default %s).", defaultServer))
	fs.IntVar(&o.RequestTimeout, "request-timeout", o.RequestTimeout, "Request Timeout in seconds (0 - use the client config or no timeout)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(display.LegalOutputFormats, ", ")))
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.ConfigFilePath = ConfigFilePath(o.ConfigDir)
	o.out = cmd.OutOrStdout()
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	// 0 is a default value and is used as a flag to use the configured timeout
	if o.RequestTimeout < 0 {
		return fmt.Errorf("request-timeout must be greater than 0")
	}

	if o.ConfigDir != "" {
		path := filepath.Clean(o.ConfigDir)
		ext := filepath.Ext(path)
		if ext != "" {
			return fmt.Errorf("config-dir should specify a directory path")
		}
	}

	if !slices.Contains(display.LegalOutputFormats, o.Output) {
		return fmt.Errorf("output format must be one of (%s)", strings.Join(display.LegalOutputFormats, ", "))
	}
	return nil
}

// WithTimeout bounds ctx by --request-timeout when it is set.
func (o *GlobalOptions) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.RequestTimeout != 0 {
		return context.WithTimeout(ctx, time.Duration(o.RequestTimeout)*time.Second)
	}
	return ctx, func() {}
}

// BuildClient resolves the client config: --server wins over the config
// file, which wins over the built in default. A missing config file is not
// an error.
func (o *GlobalOptions) BuildClient() (*client.Client, error) {
	cfg := &client.Config{Service: client.Service{Server: defaultServer}}
	fileCfg, err := client.ReadConfig(o.ConfigFilePath)
	switch {
	case err == nil:
		cfg = fileCfg
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}
	if o.Server != "" {
		cfg.Service.Server = o.Server
	}
	c, err := client.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return c, nil
}

func (o *GlobalOptions) print(data any) error {
	return display.NewFormatter(display.OutputFormat(o.Output)).Format(o.out, data)
}

func ConfigFilePath(configDirOverride string) string {
	return filepath.Join(ConfigDir(configDirOverride), defaultConfigFileName+"."+defaultConfigFileExt)
}

func ConfigDir(configDirOverride string) string {
	if configDirOverride != "" {
		return configDirOverride
	}
	return config.ConfigDir()
}
