package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/pokerfactory/internal/card"
)

// Config represents the application configuration
type Config struct {
	DefaultDeck string   `toml:"default_deck"`
	Generate    Generate `toml:"generate"`
}

// Generate holds the defaults used by the generate and sample commands.
// Command-line flags override them.
type Generate struct {
	Images        int     `toml:"images"`
	TrainSplit    float64 `toml:"train_split"`
	ValidSplit    float64 `toml:"valid_split"`
	TestSplit     float64 `toml:"test_split"`
	Brightness    float64 `toml:"brightness_range"`
	SizeVariation float64 `toml:"size_variation"`
	Cards         int     `toml:"cards"`
	Spacing       int     `toml:"spacing"`
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	Format        string  `toml:"format"`
	Workers       int     `toml:"workers"`
	DatasetRoot   string  `toml:"dataset_root"`

	card.Features
}

// DefaultGenerate returns the generation defaults of a fresh install.
func DefaultGenerate() Generate {
	return Generate{
		Images:        20,
		TrainSplit:    0.7,
		ValidSplit:    0.2,
		TestSplit:     0.1,
		Brightness:    0.15,
		SizeVariation: 0.2,
		Cards:         5,
		Spacing:       40,
		Width:         1024,
		Height:        768,
		Format:        "yolov8",
		Workers:       runtime.NumCPU(),
		DatasetRoot:   "../datasets",
		Features:      card.Features{Seated: true, Active: true, Dealer: true},
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "pokerfactory", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "pokerfactory", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults on first use.
// Keys missing from an existing file keep their default values.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Config{Generate: DefaultGenerate()}
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return &config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := &Config{
		DefaultDeck: "",
		Generate:    DefaultGenerate(),
	}

	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// GetDeckPath returns the path to a deck, either in the deck library or a relative path
func GetDeckPath(deckName string) (string, error) {
	libraryPath := GetDeckLibraryPath()
	deckPath := filepath.Join(libraryPath, deckName)

	if _, err := os.Stat(deckPath); err == nil {
		return deckPath, nil
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(deckName); err == nil {
		return deckName, nil
	}

	return "", fmt.Errorf("deck not found: %s", deckName)
}

// ResolveDeck returns the path of the named deck, or of the default deck
// when name is empty.
func ResolveDeck(name string) (string, error) {
	if name != "" {
		return GetDeckPath(name)
	}

	defaultDeck, err := GetDefaultDeck()
	if err != nil {
		return "", fmt.Errorf("error getting default deck: %w", err)
	}
	if defaultDeck == "" {
		return "", fmt.Errorf("no deck given and no default deck set (see 'pokerfactory deck set-default')")
	}
	return GetDeckPath(defaultDeck)
}

// GetDefaultDeck returns the default deck name from config
func GetDefaultDeck() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultDeck, nil
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName
	return writeConfig(config)
}
