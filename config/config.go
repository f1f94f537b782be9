package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the bring-up toolchain's on-disk configuration, shared by the
// amldump and buddyinfo CLI tools.
type Config struct {
	// Buddy allocator settings
	Buddy struct {
		Orders     int    `toml:"orders"`
		FrameSize  uint64 `toml:"frame_size"`
		MaxRegions int    `toml:"max_regions"`
	} `toml:"buddy"`

	// AML parser settings
	AML struct {
		MaxScopeDepth  int  `toml:"max_scope_depth"`
		StrictFailures bool `toml:"strict_failures"`
	} `toml:"aml"`

	// Dump settings shared by the CLI tools
	Dump struct {
		OutputFile   string `toml:"output_file"`
		Format       string `toml:"format"` // amldump implements only "text"
		ColorOutput  bool   `toml:"color_output"`
		BytesPerLine int    `toml:"bytes_per_line"`
	} `toml:"dump"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Buddy defaults
	cfg.Buddy.Orders = 11
	cfg.Buddy.FrameSize = 4096
	cfg.Buddy.MaxRegions = 32

	// AML defaults
	cfg.AML.MaxScopeDepth = 64
	cfg.AML.StrictFailures = true

	// Dump defaults
	cfg.Dump.OutputFile = ""
	cfg.Dump.Format = "text"
	cfg.Dump.ColorOutput = true
	cfg.Dump.BytesPerLine = 16

	return cfg
}

// appDirName names the subdirectory this toolchain's per-user config and
// logs live under, beneath whichever base directory is in play.
const appDirName = "rosgo-bringup"

// GetConfigPath returns the config file path. ROS_BRINGUP_CONFIG_DIR, if
// set, overrides the directory outright (handy for CI and for running
// amldump/buddyinfo against a scratch tree); otherwise it's
// os.UserConfigDir()/rosgo-bringup, created on demand. Falls back to
// "config.toml" in the working directory if neither is available.
func GetConfigPath() string {
	dir := configDir()
	if dir == "" {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

func configDir() string {
	dir := os.Getenv("ROS_BRINGUP_CONFIG_DIR")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(base, appDirName)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return dir
}

// GetLogPath returns the log directory. ROS_BRINGUP_LOG_DIR overrides it
// outright, mirroring GetConfigPath's override; otherwise it's
// os.UserCacheDir()/rosgo-bringup/logs, created on demand, since these
// tools' logs are disposable debug output rather than data worth backing
// up (see ROS_DEBUG in buddy/allocator.go and aml/debug.go).
func GetLogPath() string {
	dir := os.Getenv("ROS_BRINGUP_LOG_DIR")
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "logs"
		}
		dir = filepath.Join(base, appDirName, "logs")
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "logs"
	}
	return dir
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error: it yields DefaultConfig().
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file. It writes to a
// sibling temp file and renames it into place so a crash or a concurrent
// reader never observes a half-written config.toml.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp) // #nosec G304 -- operator-supplied config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing config file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}
