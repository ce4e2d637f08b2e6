package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyServerAddr            = "server.addr"
	KeyServerCORSOrigins     = "server.cors-origins"
	KeyServerShutdownTimeout = "server.shutdown-timeout"

	KeyDatabasePath = "database.path"

	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"

	KeyAPIURL     = "api.url"
	KeyAPITimeout = "api.timeout"

	KeyAutoExpandDepth = "ui.auto-expand-depth"
	KeyOutputFormat    = "ui.output-format"
	KeyLastMenu        = "ui.last-menu"

	KeyDebug = "debug"
)

const (
	DefaultServerAddr      = ":3001"
	DefaultDatabasePath    = "menutree.db"
	DefaultAPIURL          = "http://localhost:3001"
	DefaultAPITimeout      = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	// DefaultAutoExpandDepth matches treeview.DefaultAutoExpandDepth.
	DefaultAutoExpandDepth = 5

	configDirName  = ".menutree"
	configFileName = "config.yaml"
	envPrefix      = "MT"
)

// Option adjusts where Initialize looks for config files.
type Option func(*sources)

// sources are the config files merged into the live configuration. dir is
// where the upward search for a project file starts.
type sources struct {
	dir     string
	user    string
	project string
}

// WithWorkingDir starts the project config search in dir instead of the
// process working directory.
func WithWorkingDir(dir string) Option {
	return func(s *sources) { s.dir = dir }
}

// WithProjectConfig uses path as the project config and skips the search.
func WithProjectConfig(path string) Option {
	return func(s *sources) { s.project = path }
}

// WithUserConfig replaces ~/.menutree/config.yaml.
func WithUserConfig(path string) Option {
	return func(s *sources) { s.user = path }
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	loaded     sources
	initErr    error
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
// Only the first call has any effect.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		var src sources
		for _, opt := range opts {
			opt(&src)
		}
		initErr = load(src)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

// GetString fetches a string configuration value, initializing on demand.
func GetString(key string) string {
	v, err := getViper()
	if err != nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool fetches a bool configuration value, initializing on demand.
func GetBool(key string) bool {
	v, err := getViper()
	if err != nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt fetches an integer configuration value, initializing on demand.
func GetInt(key string) int {
	v, err := getViper()
	if err != nil {
		return 0
	}
	return v.GetInt(key)
}

// GetStringSlice fetches a list value, initializing on demand. A single
// comma-separated string (as set through the environment) is split.
func GetStringSlice(key string) []string {
	v, err := getViper()
	if err != nil {
		return nil
	}
	raw := v.GetStringSlice(key)
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// GetDuration fetches a duration configuration value, initializing on demand.
func GetDuration(key string) time.Duration {
	v, err := getViper()
	if err != nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set updates a configuration key at runtime, initializing on demand.
func Set(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	configInst.Set(key, value)
	return nil
}

// resolve fills in the default user path and searches for a project file.
func (s sources) resolve() (sources, error) {
	s.dir = strings.TrimSpace(s.dir)
	if s.dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return s, fmt.Errorf("determine working directory: %w", err)
		}
		s.dir = wd
	}
	if s.user = strings.TrimSpace(s.user); s.user == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return s, fmt.Errorf("determine user home: %w", err)
		}
		s.user = filepath.Join(home, configDirName, configFileName)
	}
	if s.project = strings.TrimSpace(s.project); s.project == "" {
		found, err := searchUp(s.dir)
		if err != nil {
			return s, err
		}
		s.project = found
	}
	return s, nil
}

func load(src sources) error {
	src, err := src.resolve()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, layer := range []struct{ name, path string }{
		{"user", src.user},
		{"project", src.project},
	} {
		if err := mergeFile(v, layer.path); err != nil {
			return fmt.Errorf("load %s config: %w", layer.name, err)
		}
	}

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	loaded = src
	return nil
}

// mergeFile merges a YAML file into v. A missing or blank file is skipped.
func mergeFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	//nolint:gosec // G304: reading the user's own config files
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read %s: %w", path, err)
	case len(bytes.TrimSpace(data)) == 0:
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// searchUp returns the nearest .menutree/config.yaml at or above dir, or ""
// when there is none.
func searchUp(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, configDirName, configFileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("config path %s is a directory", candidate)
		case err == nil:
			return candidate, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerAddr, DefaultServerAddr)
	v.SetDefault(KeyServerCORSOrigins, []string{"http://localhost:3000"})
	v.SetDefault(KeyServerShutdownTimeout, DefaultShutdownTimeout)
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyAPITimeout, DefaultAPITimeout)
	v.SetDefault(KeyAutoExpandDepth, DefaultAutoExpandDepth)
	v.SetDefault(KeyOutputFormat, "rich")
	v.SetDefault(KeyLastMenu, "")
	v.SetDefault(KeyDebug, false)
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return configInst, nil
}

func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	loaded = sources{}
	initErr = nil
	configOnce = sync.Once{}
}

// ResetForTesting drops the live configuration and reloads it with the
// project search rooted in a temporary directory. The returned function
// clears it again.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	_ = Initialize(WithWorkingDir(t.TempDir()))
	return reset
}

// SaveValue writes key to the project config when one was loaded, otherwise
// to the user config, and applies it to the live configuration. Only the
// user config directory is created on demand.
func SaveValue(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.RLock()
	target, isUser := loaded.project, false
	if target == "" {
		target, isUser = loaded.user, true
	}
	configMu.RUnlock()
	if target == "" {
		return fmt.Errorf("configuration not initialized")
	}

	file := viper.New()
	file.SetConfigType("yaml")
	if err := mergeFile(file, target); err != nil {
		return err
	}
	file.Set(key, value)

	if isUser {
		//nolint:gosec // G301: config directories use standard permissions
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := file.WriteConfigAs(target); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return Set(key, value)
}
