package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marca as variáveis de ambiente lidas pela aplicação.
// FOODGRAM_DB_HOST -> db_host, FOODGRAM_SECURITY__JWT_SECRET -> security.jwt_secret
const EnvPrefix = "FOODGRAM_"

// ConfigPathEnvVar sobrescreve o caminho do arquivo de configuração.
const ConfigPathEnvVar = "FOODGRAM_CONFIG"

// DefaultConfigPaths são procurados nessa ordem quando nenhum caminho é informado.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/foodgram/config.yaml",
}

type Security struct {
	JwtSecret           string `koanf:"jwt_secret"`
	AccessTTLMinutes    int    `koanf:"access_ttl_minutes"`
	RefreshCodeLen      int    `koanf:"refresh_code_len"`
	RefreshCodeMaxValid int    `koanf:"refresh_code_max_valid_days"`
	BcryptCost          int    `koanf:"bcrypt_cost"`
}

type Recipes struct {
	// MaxCookingTime é o limite superior de cooking_time em minutos. 0 desliga o limite.
	MaxCookingTime int `koanf:"max_cooking_time"`
	// RecipesLimit é o padrão de recipes_limit na listagem de assinaturas.
	RecipesLimit int `koanf:"recipes_limit"`
}

type Logging struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type Configuration struct {
	ApiPort     string `koanf:"api_port"`
	Environment string `koanf:"environment"`

	Database string `koanf:"database"` // "sqlite3" ou "postgres"
	DbPath   string `koanf:"db_path"`
	DbHost   string `koanf:"db_host"`
	DbPort   string `koanf:"db_port"`
	DbUser   string `koanf:"db_user"`
	DbName   string `koanf:"db_name"`
	DbPass   string `koanf:"db_pass"`
	DbLog    bool   `koanf:"db_log"`

	// CORSOrigins vazio ou com "*" libera qualquer origem.
	CORSOrigins []string `koanf:"cors_origins"`

	Security Security `koanf:"security"`
	Recipes  Recipes  `koanf:"recipes"`
	Logging  Logging  `koanf:"logging"`
}

// Default devolve a configuração usada quando nada é informado.
func Default() Configuration {
	return Configuration{
		ApiPort:     "8080",
		Environment: "development",
		Database:    "sqlite3",
		DbPath:      "db/database.db",
		DbPort:      "5432",
		CORSOrigins: []string{"*"},
		Security: Security{
			JwtSecret:           "CHANGE_ME",
			AccessTTLMinutes:    24 * 60,
			RefreshCodeLen:      32,
			RefreshCodeMaxValid: 30,
			BcryptCost:          10,
		},
		Recipes: Recipes{
			MaxCookingTime: 600,
			RecipesLimit:   6,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
	}
}

// Get carrega defaults -> arquivo YAML (opcional) -> variáveis de ambiente.
// path vazio procura FOODGRAM_CONFIG e depois DefaultConfigPaths.
func Get(path string) (Configuration, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Configuration{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Configuration{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return Configuration{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var c Configuration
	if err := k.Unmarshal("", &c); err != nil {
		return Configuration{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

// Validate rejeita combinações que impediriam o servidor de subir corretamente.
func (c Configuration) Validate() error {
	switch c.Database {
	case "sqlite3", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported database %q", c.Database)
	}
	if c.Security.AccessTTLMinutes <= 0 {
		return errors.New("security.access_ttl_minutes must be positive")
	}
	if c.Security.RefreshCodeLen <= 0 {
		return errors.New("security.refresh_code_len must be positive")
	}
	if c.Security.RefreshCodeMaxValid <= 0 {
		return errors.New("security.refresh_code_max_valid_days must be positive")
	}
	if c.Recipes.MaxCookingTime < 0 {
		return errors.New("recipes.max_cooking_time must not be negative")
	}
	if c.Recipes.RecipesLimit < 0 {
		return errors.New("recipes.recipes_limit must not be negative")
	}
	if c.IsProduction() && (c.Security.JwtSecret == "" || c.Security.JwtSecret == "CHANGE_ME") {
		return errors.New("security.jwt_secret must be set in production")
	}
	return nil
}

func (c Configuration) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform converte FOODGRAM_SECURITY__JWT_SECRET em security.jwt_secret.
// FOODGRAM_CONFIG não é uma chave de configuração e é descartado.
func envTransform(key string) string {
	if key == ConfigPathEnvVar {
		return ""
	}
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
