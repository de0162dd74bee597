package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ApplicationConfig describes the editor's startup state. It is read from a
// TOML file next to the binary; a missing file yields the defaults.
type ApplicationConfig struct {
	Name        string `toml:"name"`
	StartPosX   uint32 `toml:"start_pos_x"`
	StartPosY   uint32 `toml:"start_pos_y"`
	StartWidth  uint32 `toml:"start_width"`
	StartHeight uint32 `toml:"start_height"`
	LogLevel    string `toml:"log_level"`

	Assets AssetsConfig `toml:"assets"`
}

// AssetsConfig controls the asset catalog and loader.
type AssetsConfig struct {
	// RootDir is the directory watched for loadable asset files.
	RootDir string `toml:"root_dir"`
	// RequestQueueSize is the capacity of the loader's request channel.
	RequestQueueSize int `toml:"request_queue_size"`
	// ResultQueueSize is the capacity of the loader's result channel.
	ResultQueueSize int `toml:"result_queue_size"`
	// HistorySize is how many completed loads the editor keeps for display.
	HistorySize int `toml:"history_size"`
}

func Default() *ApplicationConfig {
	return &ApplicationConfig{
		Name:        "Atelier Editor",
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		LogLevel:    "debug",
		Assets: AssetsConfig{
			RootDir:          "assets",
			RequestQueueSize: 64,
			ResultQueueSize:  64,
			HistorySize:      32,
		},
	}
}

// Load reads the config from path, overlaying the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (*ApplicationConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
