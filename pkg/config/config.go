package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	homedir "github.com/mitchellh/go-homedir"
	yaml "gopkg.in/yaml.v3"

	"github.com/birdayz/n85/pkg/stream"
)

// Keys accepted by Set, in the order they are listed to users.
var Keys = []string{"block-size", "trim-space", "output"}

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"default", "json"}

type Config struct {
	BlockSize int    `yaml:"block-size"`
	TrimSpace bool   `yaml:"trim-space"`
	Output    string `yaml:"output"`
	// configPath is the file path used for reading and writing this config.
	configPath string `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BlockSize: stream.DefaultBlockSize,
		TrimSpace: true,
		Output:    "default",
	}
}

// Path returns the file this config was read from or will be written to.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) Validate() error {
	if c.BlockSize <= 0 || c.BlockSize%4 != 0 {
		return fmt.Errorf("block-size must be a positive multiple of 4, got %d", c.BlockSize)
	}
	for _, f := range OutputFormats {
		if c.Output == f {
			return nil
		}
	}
	return fmt.Errorf("output must be one of: default, json, got %q", c.Output)
}

// Set assigns value to key and validates the result. On error c is unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "block-size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid block-size %q: %w", value, err)
		}
		next.BlockSize = n
	case "trim-space":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid trim-space %q: %w", value, err)
		}
		next.TrimSpace = b
	case "output":
		next.Output = value
	default:
		return fmt.Errorf("unknown key %q: must be one of: block-size, trim-space, output", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func (c *Config) Write() error {
	configPath := c.configPath
	if configPath == "" {
		var err error
		configPath, err = getDefaultConfigPath()
		if err != nil {
			return err
		}
	}
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(configDir, "config.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()

	encoder := yaml.NewEncoder(tmpFile)
	if err := encoder.Encode(c); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp config file: %w", err)
	}
	c.configPath = configPath
	return nil
}

// ReadConfig loads the config at cfgPath, or the default location if cfgPath
// is empty. A missing default file yields Default().
func ReadConfig(cfgPath string) (Config, error) {
	resolvedPath, err := resolveConfigPath(cfgPath)
	if err != nil {
		return Config{}, err
	}

	c := Default()
	c.configPath = resolvedPath

	file, err := os.OpenFile(resolvedPath, os.O_RDONLY, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", resolvedPath, err)
	}
	return c, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ResolvePath returns the file ReadConfig would load for cfgPath without
// reading it.
func ResolvePath(cfgPath string) (string, error) {
	return resolveConfigPath(cfgPath)
}

func resolveConfigPath(cfgPath string) (string, error) {
	if cfgPath == "" {
		return getDefaultConfigPath()
	}
	expanded, err := homedir.Expand(cfgPath)
	if err != nil {
		return "", fmt.Errorf("expand config path: %w", err)
	}
	if !fileExists(expanded) {
		return "", fmt.Errorf("config file %q does not exist", cfgPath)
	}
	return expanded, nil
}

func getDefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	return filepath.Join(home, ".n85", "config"), nil
}
