package client

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/flightctl/romannumeral/internal/util"
	"sigs.k8s.io/yaml"
)

// Config holds the information needed to connect to a numeral API server
type Config struct {
	Service Service `json:"service"`
	// RequestTimeout bounds each request, 0 leaves it to the caller's context.
	RequestTimeout util.Duration `json:"requestTimeout,omitempty"`
}

// Service contains information how to connect to the numeral API server.
type Service struct {
	// Server is the base URL of the API server, e.g. http://localhost:8080.
	Server string `json:"server"`
}

// NewFromConfig returns a new numeral API client from the given config.
func NewFromConfig(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewClient(config.Service.Server, WithTimeout(time.Duration(config.RequestTimeout)))
}

// NewFromConfigFile returns a new numeral API client using the config read from the given file.
func NewFromConfigFile(filename string) (*Client, error) {
	config, err := ReadConfig(filename)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config)
}

func ReadConfig(filename string) (*Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &config, nil
}

// WriteConfig writes a client config file using the given parameters.
func WriteConfig(filename string, server string, requestTimeout time.Duration) error {
	config := Config{
		Service:        Service{Server: server},
		RequestTimeout: util.Duration(requestTimeout),
	}
	if err := config.Validate(); err != nil {
		return err
	}
	contents, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(filename, contents, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var validationErrors []error
	if len(c.Service.Server) == 0 {
		validationErrors = append(validationErrors, errors.New("no server found"))
	} else {
		u, err := url.Parse(c.Service.Server)
		switch {
		case err != nil:
			validationErrors = append(validationErrors, fmt.Errorf("invalid server format %q: %w", c.Service.Server, err))
		case u.Scheme != "http" && u.Scheme != "https":
			validationErrors = append(validationErrors, fmt.Errorf("invalid server format %q: scheme must be http or https", c.Service.Server))
		case len(u.Hostname()) == 0:
			validationErrors = append(validationErrors, fmt.Errorf("invalid server format %q: no hostname", c.Service.Server))
		}
	}
	if c.RequestTimeout < 0 {
		validationErrors = append(validationErrors, fmt.Errorf("requestTimeout must not be negative, got %s", c.RequestTimeout))
	}
	if len(validationErrors) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(validationErrors...))
	}
	return nil
}
