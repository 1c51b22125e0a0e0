package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host          string `yaml:"host" json:"host"`
	Port          int    `yaml:"port" json:"port"`
	Secret        string `yaml:"secret" json:"secret"`
	AdminUsername string `yaml:"admin_username" json:"admin_username"`
	AdminPassword string `yaml:"admin_password" json:"admin_password"`
	// OpenAdmin restores the legacy unprotected admin panel. Leave off
	// outside of parity testing.
	OpenAdmin bool `yaml:"open_admin" json:"open_admin"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "boutique",
		Location: "America/Sao_Paulo",
		Workdir:  "/var/boutique",
		Debug:    true,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          1816,
		Secret:        "9b6de5cc-boutique-0bd8d8c61398",
		AdminUsername: "admin",
		AdminPassword: "boutique",
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "boutique",
		User:     "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/boutique/boutique.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v := os.Getenv(name); v != "" {
		f(v)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = v == "true" || v == "1" || v == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToInt(v)
	}
}

// LoadConfig reads configuration from cfile, falling back to the
// defaults, then applies BOUTIQUE_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("BOUTIQUE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBoolValue("BOUTIQUE_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("BOUTIQUE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("BOUTIQUE_WEB_PORT", &cfg.Web.Port)
	setEnvValue("BOUTIQUE_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("BOUTIQUE_WEB_ADMIN_USERNAME", func(v string) { cfg.Web.AdminUsername = v })
	setEnvValue("BOUTIQUE_WEB_ADMIN_PASSWORD", func(v string) { cfg.Web.AdminPassword = v })
	setEnvBoolValue("BOUTIQUE_WEB_OPEN_ADMIN", &cfg.Web.OpenAdmin)

	setEnvValue("BOUTIQUE_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("BOUTIQUE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("BOUTIQUE_DB_PORT", &cfg.Database.Port)
	setEnvValue("BOUTIQUE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("BOUTIQUE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("BOUTIQUE_DB_PWD", func(v string) { cfg.Database.Passwd = v })

	setEnvValue("BOUTIQUE_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("BOUTIQUE_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("BOUTIQUE_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	return cfg
}

// InitDirs creates the runtime directory layout under workdir.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "metrics"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0o755)
}
