// Package config resolves hmmkit settings from defaults, an optional config
// file, a .env file, HMMKIT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"hmmkit/internal/hmmer"
	"hmmkit/internal/logging"
)

// EnvPrefix is prepended to every environment override (HMMKIT_THREADS, ...).
const EnvPrefix = "HMMKIT"

// DotEnv holds HMMKIT_* assignments read from the working directory when
// present. Real environment variables win over it.
const DotEnv = ".env"

// Config keys.
const (
	KeyThreads   = "threads"
	KeyTmpDir    = "tmp_dir"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyQuiet     = "quiet"
	KeySearch    = "bin.hmmsearch"
	KeyAlign     = "bin.hmmalign"
	KeyFetch     = "bin.hmmfetch"
)

var keys = []string{KeyThreads, KeyTmpDir, KeyLogLevel, KeyLogFormat, KeyQuiet, KeySearch, KeyAlign, KeyFetch}

// EnvName is the environment variable overriding key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// flagKeys maps persistent flag names onto config keys.
var flagKeys = map[string]string{
	"threads":    KeyThreads,
	"tmp-dir":    KeyTmpDir,
	"log-level":  KeyLogLevel,
	"log-format": KeyLogFormat,
	"quiet":      KeyQuiet,
	"hmmsearch":  KeySearch,
	"hmmalign":   KeyAlign,
	"hmmfetch":   KeyFetch,
}

type Config struct {
	Threads   int // 0 = all CPUs
	TmpDir    string
	LogLevel  string
	LogFormat string
	Quiet     bool
	Binaries  hmmer.Binaries

	// File is the config file that was read, if any.
	File string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyThreads, 0)
	v.SetDefault(KeyTmpDir, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeySearch, hmmer.DefaultBinaries.Search)
	v.SetDefault(KeyAlign, hmmer.DefaultBinaries.Align)
	v.SetDefault(KeyFetch, hmmer.DefaultBinaries.Fetch)
}

// Load resolves the configuration. path names an explicit config file; when
// empty, hmmkit.{yaml,toml,json} in the working directory is read if present.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	return load(path, DotEnv, flags)
}

func load(path, dotenv string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("hmmkit")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if err := mergeDotEnv(v, dotenv); err != nil {
		return Config{}, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, err
			}
		}
	}

	c := Config{
		Threads:   v.GetInt(KeyThreads),
		TmpDir:    v.GetString(KeyTmpDir),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		Quiet:     v.GetBool(KeyQuiet),
		Binaries: hmmer.Binaries{
			Search: v.GetString(KeySearch),
			Align:  v.GetString(KeyAlign),
			Fetch:  v.GetString(KeyFetch),
		},
		File: v.ConfigFileUsed(),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// mergeDotEnv layers HMMKIT_* values from a .env file over the config file.
// A missing file is not an error.
func mergeDotEnv(v *viper.Viper, path string) error {
	vals, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	m := map[string]any{}
	for _, key := range keys {
		if val, ok := vals[EnvName(key)]; ok {
			setNested(m, key, val)
		}
	}
	if len(m) == 0 {
		return nil
	}
	return v.MergeConfigMap(m)
}

func setNested(m map[string]any, key string, val any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		sub, ok := m[p].(map[string]any)
		if !ok {
			sub = map[string]any{}
			m[p] = sub
		}
		m = sub
	}
	m[parts[len(parts)-1]] = val
}

// Validate checks the resolved values.
func (c Config) Validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0 (0 = all CPUs), got %d", c.Threads)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if c.Binaries.Search == "" || c.Binaries.Align == "" || c.Binaries.Fetch == "" {
		return fmt.Errorf("HMMER binary names must not be empty")
	}
	return nil
}
