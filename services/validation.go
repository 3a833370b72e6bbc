package services

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"foodgram/models"

	"github.com/jinzhu/gorm"
)

const maxRecipeNameLen = 200

// Number guarda o texto de um campo numérico do payload. Aceita 5 e "5";
// a conversão só acontece na validação, para que "abc" vire erro de campo
// e não erro de decodificação do corpo inteiro.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*n = Number(strings.TrimSpace(s))
	return nil
}

func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

type IngredientAmountInput struct {
	ID     int64  `json:"id"`
	Amount Number `json:"amount"`
}

// RecipeInput é o payload de escrita. Campo nil = ausente na request:
// no update o valor anterior é mantido.
type RecipeInput struct {
	Name        *string                  `json:"name"`
	Text        *string                  `json:"text"`
	Image       *string                  `json:"image"`
	CookingTime *Number                  `json:"cooking_time"`
	Ingredients *[]IngredientAmountInput `json:"ingredients"`
	Tags        *[]int64                 `json:"tags"`
}

// Policy reúne os limites configuráveis da validação.
type Policy struct {
	// MaxCookingTime em minutos; 0 desliga o limite superior.
	MaxCookingTime int
}

// ValidRecipe é o payload já validado e convertido.
type ValidRecipe struct {
	Name        *string
	Text        *string
	Image       *string
	CookingTime *int
	// Ingredients e Tags são nil quando o campo não veio na request.
	Ingredients []models.RecipeIngredient
	Tags        []int64
}

// ValidateRecipe checa o payload inteiro antes de qualquer escrita e para no
// primeiro campo inválido. requireAll exige todos os campos (criação).
func ValidateRecipe(db *gorm.DB, in RecipeInput, policy Policy, requireAll bool) (ValidRecipe, error) {
	var out ValidRecipe

	if in.Ingredients != nil {
		rows, err := validateIngredients(db, *in.Ingredients)
		if err != nil {
			return ValidRecipe{}, err
		}
		out.Ingredients = rows
	} else if requireAll {
		return ValidRecipe{}, invalid("ingredients", "at least one ingredient is required")
	}

	if in.Tags != nil {
		tags, err := validateTags(db, *in.Tags)
		if err != nil {
			return ValidRecipe{}, err
		}
		out.Tags = tags
	} else if requireAll {
		return ValidRecipe{}, invalid("tags", "at least one tag is required")
	}

	if in.CookingTime != nil {
		minutes, err := validateCookingTime(*in.CookingTime, policy)
		if err != nil {
			return ValidRecipe{}, err
		}
		out.CookingTime = &minutes
	} else if requireAll {
		return ValidRecipe{}, invalid("cooking_time", "this field is required")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return ValidRecipe{}, invalid("name", "must not be blank")
		}
		if utf8.RuneCountInString(name) > maxRecipeNameLen {
			return ValidRecipe{}, invalid("name", "must have at most %d characters", maxRecipeNameLen)
		}
		out.Name = &name
	} else if requireAll {
		return ValidRecipe{}, invalid("name", "this field is required")
	}

	if in.Text != nil {
		text := strings.TrimSpace(*in.Text)
		if text == "" {
			return ValidRecipe{}, invalid("text", "must not be blank")
		}
		out.Text = &text
	} else if requireAll {
		return ValidRecipe{}, invalid("text", "this field is required")
	}

	if in.Image != nil {
		image := strings.TrimSpace(*in.Image)
		out.Image = &image
	}

	return out, nil
}

func validateIngredients(db *gorm.DB, items []IngredientAmountInput) ([]models.RecipeIngredient, error) {
	if len(items) == 0 {
		return nil, invalid("ingredients", "at least one ingredient is required")
	}

	seen := make(map[int64]bool, len(items))
	rows := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		amount, err := item.Amount.Int64()
		if err != nil {
			return nil, invalid("ingredients", "amount of ingredient %d must be an integer", item.ID)
		}
		if amount <= 0 {
			return nil, invalid("ingredients", "amount of ingredient %d must be positive", item.ID)
		}
		if seen[item.ID] {
			return nil, invalid("ingredients", "ingredient %d is repeated", item.ID)
		}
		seen[item.ID] = true
		rows = append(rows, models.RecipeIngredient{IngredientID: item.ID, Amount: amount})
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.IngredientID)
	}
	missing, found, err := firstMissingID(db, "ingredients", ids)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, invalid("ingredients", "ingredient %d does not exist", missing)
	}
	return rows, nil
}

func validateTags(db *gorm.DB, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, invalid("tags", "at least one tag is required")
	}

	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, invalid("tags", "tag %d is repeated", id)
		}
		seen[id] = true
	}

	missing, found, err := firstMissingID(db, "tags", ids)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, invalid("tags", "tag %d does not exist", missing)
	}
	return ids, nil
}

func validateCookingTime(raw Number, policy Policy) (int, error) {
	minutes, err := raw.Int64()
	if err != nil {
		return 0, invalid("cooking_time", "must be an integer")
	}
	if minutes < 1 {
		return 0, invalid("cooking_time", "must be at least 1")
	}
	if policy.MaxCookingTime > 0 && minutes > int64(policy.MaxCookingTime) {
		return 0, invalid("cooking_time", "must be at most %d", policy.MaxCookingTime)
	}
	return int(minutes), nil
}

// firstMissingID procura, na ordem recebida, o primeiro id ausente da tabela.
func firstMissingID(db *gorm.DB, table string, ids []int64) (int64, bool, error) {
	var existing []int64
	if err := db.Table(table).Where("id IN (?)", ids).Pluck("id", &existing).Error; err != nil {
		return 0, false, err
	}
	present := make(map[int64]bool, len(existing))
	for _, id := range existing {
		present[id] = true
	}
	for _, id := range ids {
		if !present[id] {
			return id, true, nil
		}
	}
	return 0, false, nil
}
