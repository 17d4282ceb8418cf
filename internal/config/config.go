// ABOUTME: Runtime configuration from the environment and .env files
// ABOUTME: Resolves API credentials and per-turn defaults once at startup
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/voiceturn/voiceturn-go/internal/client"
)

// Environment variable names
const (
	EnvAPIKey    = "EARKICK_API_KEY"
	EnvAPIURL    = "EARKICK_API_URL"
	EnvLanguage  = "VOICETURN_LANGUAGE"
	EnvTTSVoice  = "VOICETURN_TTS_VOICE"
	EnvUseVoice  = "VOICETURN_USE_VOICE"
	EnvOutputDir = "VOICETURN_OUTPUT_DIR"
	EnvPlayAudio = "VOICETURN_PLAY_AUDIO"
)

// Defaults
const (
	DefaultAPIURL    = client.DefaultURL
	DefaultLanguage  = "en"
	DefaultTTSVoice  = "nova"
	DefaultUseVoice  = true
	DefaultOutputDir = "output"
	DefaultPlayAudio = false
)

// Config is the resolved configuration
type Config struct {
	APIKey    string
	APIURL    string
	Language  string
	TTSVoice  string
	UseVoice  bool
	OutputDir string
	PlayAudio bool
}

// Authorization returns the Authorization header value, empty without a key
func (c Config) Authorization() string {
	if c.APIKey == "" {
		return ""
	}
	return "Basic " + c.APIKey
}

// Load reads envFile (when present) into the process environment without
// overriding variables already set, then resolves the configuration.
// An empty envFile means ".env". A missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		log.Printf("No %s file found, falling back to environment variables", envFile)
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup resolves the configuration through lookup
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		APIURL:    DefaultAPIURL,
		Language:  DefaultLanguage,
		TTSVoice:  DefaultTTSVoice,
		UseVoice:  DefaultUseVoice,
		OutputDir: DefaultOutputDir,
		PlayAudio: DefaultPlayAudio,
	}

	if v, ok := lookup(EnvAPIKey); ok {
		cfg.APIKey = v
	}
	stringVar(lookup, EnvAPIURL, &cfg.APIURL)
	stringVar(lookup, EnvLanguage, &cfg.Language)
	stringVar(lookup, EnvTTSVoice, &cfg.TTSVoice)
	stringVar(lookup, EnvOutputDir, &cfg.OutputDir)

	if err := boolVar(lookup, EnvUseVoice, &cfg.UseVoice); err != nil {
		return Config{}, err
	}
	if err := boolVar(lookup, EnvPlayAudio, &cfg.PlayAudio); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func stringVar(lookup func(string) (string, bool), name string, dst *string) {
	if v, ok := lookup(name); ok && v != "" {
		*dst = v
	}
}

func boolVar(lookup func(string) (string, bool), name string, dst *bool) error {
	v, ok := lookup(name)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", name, v, err)
	}
	*dst = b
	return nil
}
