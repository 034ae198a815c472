package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Theme variants
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings keys in the JSON config file
const (
	KeyTheme              = "theme"
	KeyWindowWidth        = "window_width"
	KeyWindowHeight       = "window_height"
	KeyOutputDirectory    = "output_directory"
	KeyDefaultFormat      = "default_format"
	KeyCookieFile         = "cookie_file"
	KeyCookiesFromBrowser = "cookies_from_browser"
	KeyEmbedMetadata      = "embed_metadata"
	KeyEmbedThumbnail     = "embed_thumbnail"
	KeyAutoClearLogs      = "auto_clear_logs"
	KeyMaxLogsToKeep      = "max_logs_to_keep"
	KeyPotProvider        = "pot_provider"
)

// Default values
const (
	DefaultTheme         = ThemeAuto
	DefaultWindowWidth   = 700
	DefaultWindowHeight  = 600
	DefaultFormat        = string(model.FormatAudio)
	DefaultMaxLogsToKeep = 5

	DefaultPotImage            = "brainicism/bgutil-ytdlp-pot-provider"
	DefaultPotContainerName    = "bgutil-provider"
	DefaultPotPort             = 4416
	DefaultPotReadinessTimeout = 30
)

// PotProvider configures the Docker-managed Proof-of-Origin token provider
type PotProvider struct {
	Enabled              bool   `mapstructure:"enabled"`
	DockerImage          string `mapstructure:"docker_image"`
	DockerContainerName  string `mapstructure:"docker_container_name"`
	DockerPort           int    `mapstructure:"docker_port"`
	BaseURL              string `mapstructure:"base_url"`
	DisableInnertube     bool   `mapstructure:"disable_innertube"`
	StopOnExit           bool   `mapstructure:"stop_on_exit"`
	ReadinessTimeoutSecs int    `mapstructure:"readiness_timeout_secs"`
}

// ResolvedBaseURL returns the configured base URL, or the local address
// derived from the docker port
func (p PotProvider) ResolvedBaseURL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}
	port := p.DockerPort
	if port == 0 {
		port = DefaultPotPort
	}
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

// Settings manages the persisted application configuration
type Settings struct {
	v    *viper.Viper
	path string
	mu   sync.Mutex
}

// DefaultPath returns the settings file location under the user config dir
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "tubefetch", "settings.json")
}

// Load reads the settings file at path, creating it with defaults on first
// run. An empty path selects DefaultPath.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	setDefaults(v)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := v.WriteConfigAs(path); err != nil {
			return nil, fmt.Errorf("failed to write default settings: %w", err)
		}
		slog.Info("created settings file with defaults", "path", path)
	} else if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	s := &Settings{v: v, path: path}

	// The default output directory must exist before the first download
	if err := os.MkdirAll(s.OutputDirectory(), 0o755); err != nil {
		slog.Warn("could not create output directory", "dir", s.OutputDirectory(), "err", err)
	}

	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTheme, DefaultTheme)
	v.SetDefault(KeyWindowWidth, DefaultWindowWidth)
	v.SetDefault(KeyWindowHeight, DefaultWindowHeight)
	v.SetDefault(KeyOutputDirectory, defaultOutputDirectory())
	v.SetDefault(KeyDefaultFormat, DefaultFormat)
	v.SetDefault(KeyCookieFile, "")
	v.SetDefault(KeyCookiesFromBrowser, "")
	v.SetDefault(KeyEmbedMetadata, true)
	v.SetDefault(KeyEmbedThumbnail, true)
	v.SetDefault(KeyAutoClearLogs, true)
	v.SetDefault(KeyMaxLogsToKeep, DefaultMaxLogsToKeep)

	v.SetDefault(KeyPotProvider+".enabled", true)
	v.SetDefault(KeyPotProvider+".docker_image", DefaultPotImage)
	v.SetDefault(KeyPotProvider+".docker_container_name", DefaultPotContainerName)
	v.SetDefault(KeyPotProvider+".docker_port", DefaultPotPort)
	v.SetDefault(KeyPotProvider+".base_url", "")
	v.SetDefault(KeyPotProvider+".disable_innertube", true)
	v.SetDefault(KeyPotProvider+".stop_on_exit", true)
	v.SetDefault(KeyPotProvider+".readiness_timeout_secs", DefaultPotReadinessTimeout)
}

func defaultOutputDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "output"
	}
	return filepath.Join(home, "Downloads", "tubefetch")
}

// Path returns the settings file path
func (s *Settings) Path() string { return s.path }

func (s *Settings) set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		slog.Warn("failed to save settings", "key", key, "err", err)
	}
}

// Theme returns the configured theme variant (auto, dark or light)
func (s *Settings) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := s.v.GetString(KeyTheme); t {
	case ThemeDark, ThemeLight:
		return t
	default:
		return ThemeAuto
	}
}

// SetTheme sets the theme variant
func (s *Settings) SetTheme(theme string) { s.set(KeyTheme, theme) }

// WindowSize returns the persisted main window dimensions
func (s *Settings) WindowSize() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	width = s.v.GetInt(KeyWindowWidth)
	height = s.v.GetInt(KeyWindowHeight)
	if width <= 0 {
		width = DefaultWindowWidth
	}
	if height <= 0 {
		height = DefaultWindowHeight
	}
	return width, height
}

// SetWindowSize persists the main window dimensions
func (s *Settings) SetWindowSize(width, height int) {
	s.mu.Lock()
	s.v.Set(KeyWindowWidth, width)
	s.v.Set(KeyWindowHeight, height)
	err := s.v.WriteConfigAs(s.path)
	s.mu.Unlock()
	if err != nil {
		slog.Warn("failed to save window size", "err", err)
	}
}

// OutputDirectory returns the configured download directory
func (s *Settings) OutputDirectory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := s.v.GetString(KeyOutputDirectory)
	if dir == "" {
		dir = defaultOutputDirectory()
	}
	return dir
}

// SetOutputDirectory sets the download directory
func (s *Settings) SetOutputDirectory(dir string) { s.set(KeyOutputDirectory, dir) }

// DefaultDownloadFormat returns the format preselected in the UI
func (s *Settings) DefaultDownloadFormat() model.DownloadFormat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.v.GetString(KeyDefaultFormat) == string(model.FormatVideo) {
		return model.FormatVideo
	}
	return model.FormatAudio
}

// SetDefaultDownloadFormat sets the preselected format
func (s *Settings) SetDefaultDownloadFormat(f model.DownloadFormat) {
	s.set(KeyDefaultFormat, string(f))
}

// CookieFile returns the path to a Netscape-format cookies file, or ""
func (s *Settings) CookieFile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyCookieFile)
}

// SetCookieFile sets the cookies file path
func (s *Settings) SetCookieFile(path string) { s.set(KeyCookieFile, path) }

// CookiesFromBrowser returns the browser name for cookie extraction, or ""
// when browser extraction is off
func (s *Settings) CookiesFromBrowser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(KeyCookiesFromBrowser)
}

// SetCookiesFromBrowser sets the browser used for cookie extraction
func (s *Settings) SetCookiesFromBrowser(browser string) { s.set(KeyCookiesFromBrowser, browser) }

// EmbedMetadata reports whether downloads embed metadata tags
func (s *Settings) EmbedMetadata() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetBool(KeyEmbedMetadata)
}

// SetEmbedMetadata toggles metadata embedding
func (s *Settings) SetEmbedMetadata(on bool) { s.set(KeyEmbedMetadata, on) }

// EmbedThumbnail reports whether audio downloads embed the thumbnail
func (s *Settings) EmbedThumbnail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetBool(KeyEmbedThumbnail)
}

// SetEmbedThumbnail toggles thumbnail embedding
func (s *Settings) SetEmbedThumbnail(on bool) { s.set(KeyEmbedThumbnail, on) }

// AutoClearLogs reports whether old log files are removed on exit
func (s *Settings) AutoClearLogs() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetBool(KeyAutoClearLogs)
}

// MaxLogsToKeep returns how many log files the retention sweep keeps
func (s *Settings) MaxLogsToKeep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.v.GetInt(KeyMaxLogsToKeep)
	if n <= 0 {
		return DefaultMaxLogsToKeep
	}
	return n
}

// SetPotProviderEnabled toggles the Docker-managed token provider
func (s *Settings) SetPotProviderEnabled(on bool) { s.set(KeyPotProvider+".enabled", on) }

// PotProvider returns the Proof-of-Origin token provider configuration
func (s *Settings) PotProvider() PotProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p PotProvider
	if err := s.v.UnmarshalKey(KeyPotProvider, &p); err != nil {
		slog.Warn("invalid pot_provider config, using defaults", "err", err)
		return PotProvider{
			Enabled:              true,
			DockerImage:          DefaultPotImage,
			DockerContainerName:  DefaultPotContainerName,
			DockerPort:           DefaultPotPort,
			DisableInnertube:     true,
			StopOnExit:           true,
			ReadinessTimeoutSecs: DefaultPotReadinessTimeout,
		}
	}
	if p.DockerImage == "" {
		p.DockerImage = DefaultPotImage
	}
	if p.DockerContainerName == "" {
		p.DockerContainerName = DefaultPotContainerName
	}
	if p.DockerPort == 0 {
		p.DockerPort = DefaultPotPort
	}
	if p.ReadinessTimeoutSecs <= 0 {
		p.ReadinessTimeoutSecs = DefaultPotReadinessTimeout
	}
	return p
}
