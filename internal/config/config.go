package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
	"github.com/go-playground/validator/v10"
)

type http struct {
	Address     string   `koanf:"address"      validate:"required"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`
}

type storageConfig struct {
	DataDir  string `koanf:"data_dir"`
	InMemory bool   `koanf:"in_memory"`
}

type scmConfig struct {
	Kind string `koanf:"kind" validate:"oneof=subversion svn git"`
}

type svnConfig struct {
	Binary          string        `koanf:"binary"            validate:"required"`
	Timeout         time.Duration `koanf:"timeout"           validate:"gte=0"`
	TrustServerCert bool          `koanf:"trust_server_cert"`
}

type gitConfig struct {
	AuthorName  string        `koanf:"author_name"`
	AuthorEmail string        `koanf:"author_email" validate:"omitempty,email"`
	Remote      string        `koanf:"remote"`
	Timeout     time.Duration `koanf:"timeout"      validate:"gte=0"`
}

type credentialsConfig struct {
	DefaultUsername   string `koanf:"default_username"`
	DefaultPassword   string `koanf:"default_password"`
	DefaultPrivateKey string `koanf:"default_private_key"`
	DefaultPassphrase string `koanf:"default_passphrase"`
}

type workerConfig struct {
	URL     string        `koanf:"url"     validate:"omitempty,http_url"`
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
}

type commentConfig struct {
	Template   string            `koanf:"template"`
	Properties map[string]string `koanf:"properties"`
}

type authConfig struct {
	SecretKey string        `koanf:"secret_key"`
	Issuer    string        `koanf:"issuer"`
	TokenExp  time.Duration `koanf:"token_exp"  validate:"gte=0"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage     storageConfig     `koanf:"storage"`
	SCM         scmConfig         `koanf:"scm"`
	SVN         svnConfig         `koanf:"svn"`
	Git         gitConfig         `koanf:"git"`
	Credentials credentialsConfig `koanf:"credentials"`
	Worker      workerConfig      `koanf:"worker"`
	Comment     commentConfig     `koanf:"comment"`
	Auth        authConfig        `koanf:"auth"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		SCM: scmConfig{
			Kind: "subversion",
		},

		SVN: svnConfig{
			Binary:  "svn",
			Timeout: 10 * time.Minute,
		},

		Git: gitConfig{
			AuthorName: "svncommit",
			Remote:     "origin",
			Timeout:    5 * time.Minute,
		},

		Worker: workerConfig{
			Timeout: 15 * time.Minute,
		},

		Auth: authConfig{
			Issuer:   "svncommit",
			TokenExp: 5 * time.Minute,
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
