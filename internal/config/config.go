// Package config loads CLI defaults for uniqueport from an optional
// JSONC configuration file and the process environment.
//
// Precedence, lowest to highest: built-in defaults, the config file,
// environment variables (a .env file in the working directory is loaded
// first via github.com/joho/godotenv). Command-line flags are applied
// on top by the cli package.
//
// The config file uses JSONC (JSON with Comments), stripped with
// github.com/tidwall/jsonc before parsing with encoding/json, so users
// can annotate their port choices in place.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/uniqueport/internal/model"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = "uniqueport.jsonc"

// Environment variable names recognized by Load.
const (
	EnvStartPort = "UNIQUEPORT_START_PORT"
	EnvCount     = "UNIQUEPORT_COUNT"
	EnvOutput    = "UNIQUEPORT_OUTPUT"
)

// Config holds the CLI defaults.
type Config struct {
	// StartPort is the cursor index the "get" command seeds the
	// allocator with before allocating.
	StartPort uint16

	// Count is the number of ports "get" allocates when no count
	// argument is given.
	Count int

	// Output is the default output format (text, json, yaml).
	Output model.OutputFormat
}

// fileConfig mirrors the JSONC file layout. Pointer fields distinguish
// "absent" from zero values so the file only overrides what it names.
type fileConfig struct {
	// StartPort is the default cursor index (0-65535).
	StartPort *int `json:"startPort,omitempty"`

	// Count is the default allocation count.
	Count *int `json:"count,omitempty"`

	// Output is the default output format: text, json, or yaml.
	Output *string `json:"output,omitempty"`
}

// Load builds the effective configuration.
//
// If path is empty, Load looks for DefaultFileName in the working
// directory and silently skips it when absent. An explicitly given path
// must exist. A file that exists but cannot be read or parsed is a
// CLIError with ExitBadConfig either way: a broken config should fail
// loudly, not be shadowed by defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		StartPort: 1000,
		Count:     1,
		Output:    model.FormatText,
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	if err := applyFile(&cfg, path, explicit); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)

	return cfg, nil
}

// applyFile merges the JSONC file at path into cfg. A missing file is
// only an error when the path was explicitly requested.
func applyFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return model.WrapCLIError(model.ExitBadConfig,
			fmt.Sprintf("cannot read config file %s", path), err)
	}

	var fc fileConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
		return model.WrapCLIError(model.ExitBadConfig,
			fmt.Sprintf("cannot parse config file %s", path), err)
	}

	if fc.StartPort != nil {
		if *fc.StartPort < 0 || *fc.StartPort > 65535 {
			return model.NewCLIError(model.ExitBadConfig,
				fmt.Sprintf("config file %s: startPort %d out of range (0-65535)", path, *fc.StartPort))
		}
		cfg.StartPort = uint16(*fc.StartPort)
	}
	if fc.Count != nil {
		if *fc.Count < 1 {
			return model.NewCLIError(model.ExitBadConfig,
				fmt.Sprintf("config file %s: count %d must be at least 1", path, *fc.Count))
		}
		cfg.Count = *fc.Count
	}
	if fc.Output != nil {
		format, err := model.ParseOutputFormat(*fc.Output)
		if err != nil {
			return model.WrapCLIError(model.ExitBadConfig,
				fmt.Sprintf("config file %s", path), err)
		}
		cfg.Output = format
	}

	return nil
}

// applyEnv merges environment variables into cfg. A .env file in the
// working directory is loaded first; variables already set in the real
// environment win over .env entries (godotenv semantics). Malformed
// values are ignored rather than fatal, so a stray variable cannot
// break every invocation.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if port, ok := getenvPort(EnvStartPort); ok {
		cfg.StartPort = port
	}
	if n, ok := getenvInt(EnvCount); ok && n >= 1 {
		cfg.Count = n
	}
	if v := os.Getenv(EnvOutput); v != "" {
		if format, err := model.ParseOutputFormat(v); err == nil {
			cfg.Output = format
		}
	}
}

func getenvPort(key string) (uint16, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

func getenvInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
