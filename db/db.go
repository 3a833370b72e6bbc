package db

import (
	"fmt"
	"os"
	"path/filepath"

	"foodgram/config"
	"foodgram/logging"
	"foodgram/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Models lista tudo que o AutoMigrate cria.
var Models = []interface{}{
	&models.User{},
	&models.RefreshToken{},
	&models.Tag{},
	&models.Ingredient{},
	&models.Recipe{},
	&models.RecipeIngredient{},
	&models.RecipeTag{},
	&models.Favorite{},
	&models.ShoppingCart{},
	&models.Subscription{},
}

// Connect abre conexão com DB (sqlite3 por padrão) e aplica as migrações.
func Connect(conf config.Configuration) (*gorm.DB, error) {
	var (
		database *gorm.DB
		err      error
	)

	switch conf.Database {
	case "postgres", "postgresql":
		logging.Info().Str("host", conf.DbHost).Str("db", conf.DbName).Msg("using postgresql")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass + " sslmode=disable"
		database, err = gorm.Open("postgres", path)
	default:
		logging.Info().Str("path", conf.DbPath).Msg("using sqlite3")
		if err := os.MkdirAll(filepath.Dir(conf.DbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		database, err = gorm.Open("sqlite3", conf.DbPath+"?_foreign_keys=1")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	database.LogMode(conf.DbLog)

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// OpenMemory abre um sqlite em memória já migrado. Usado pelos testes.
// Uma única conexão: cada conexão nova em ":memory:" seria um banco vazio.
func OpenMemory() (*gorm.DB, error) {
	database, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	database.DB().SetMaxOpenConns(1)
	database.LogMode(false)
	if err := Migrate(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Migrate cria/atualiza tabelas e índices únicos.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(Models...).Error; err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
