package db

import (
	"fmt"
	"io"
	"os"
	"strings"

	"foodgram/models"

	"github.com/goccy/go-json"
	"github.com/jinzhu/gorm"
)

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// LoadIngredientsFile carrega o arquivo JSON de ingredientes
// ([{"name": "...", "measurement_unit": "..."}]).
func LoadIngredientsFile(database *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open ingredients file: %w", err)
	}
	defer f.Close()
	return LoadIngredients(database, f)
}

// LoadIngredients insere os ingredientes que ainda não existem (mesmo nome e unidade)
// numa única transação e devolve quantos foram criados.
func LoadIngredients(database *gorm.DB, r io.Reader) (int, error) {
	var records []ingredientRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("failed to decode ingredients: %w", err)
	}

	tx := database.Begin()
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	created := 0
	for i, rec := range records {
		name := strings.TrimSpace(rec.Name)
		unit := strings.TrimSpace(rec.MeasurementUnit)
		if name == "" || unit == "" {
			tx.Rollback()
			return 0, fmt.Errorf("ingredient #%d: name and measurement_unit are required", i)
		}

		var existing models.Ingredient
		err := tx.Where("name = ? AND measurement_unit = ?", name, unit).First(&existing).Error
		if err == nil {
			continue
		}
		if !gorm.IsRecordNotFoundError(err) {
			tx.Rollback()
			return 0, err
		}

		if err := tx.Create(&models.Ingredient{Name: name, MeasurementUnit: unit}).Error; err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("ingredient %q: %w", name, err)
		}
		created++
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	return created, nil
}
