package services

import (
	"math/big"
	"sort"

	"github.com/jinzhu/gorm"
)

// CartLine é uma linha (ingrediente, quantidade) de uma receita do carrinho.
type CartLine struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// ShoppingItem é o total de um ingrediente somado entre todas as receitas.
type ShoppingItem struct {
	Name            string   `json:"name"`
	MeasurementUnit string   `json:"measurement_unit"`
	Total           *big.Int `json:"total_amount"`
}

// ShoppingList vazia significa carrinho vazio; quem apresenta decide o texto.
type ShoppingList struct {
	Items []ShoppingItem `json:"items"`
}

func (l ShoppingList) Empty() bool {
	return len(l.Items) == 0
}

type ingredientKey struct {
	name string
	unit string
}

// Aggregate agrupa por (nome, unidade) e soma sem overflow.
// Saída ordenada por nome e depois unidade.
func Aggregate(lines []CartLine) ShoppingList {
	totals := make(map[ingredientKey]*big.Int)
	for _, line := range lines {
		key := ingredientKey{name: line.Name, unit: line.MeasurementUnit}
		total, ok := totals[key]
		if !ok {
			total = new(big.Int)
			totals[key] = total
		}
		total.Add(total, big.NewInt(line.Amount))
	}

	items := make([]ShoppingItem, 0, len(totals))
	for key, total := range totals {
		items = append(items, ShoppingItem{Name: key.name, MeasurementUnit: key.unit, Total: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return ShoppingList{Items: items}
}

// CartLines achata as receitas do carrinho do usuário em linhas de ingrediente.
func CartLines(db *gorm.DB, userID int64) ([]CartLine, error) {
	var lines []CartLine
	err := db.Table("recipe_ingredients").
		Select("ingredients.name as name, ingredients.measurement_unit as measurement_unit, recipe_ingredients.amount as amount").
		Joins("join ingredients on ingredients.id = recipe_ingredients.ingredient_id").
		Joins("join shopping_carts on shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// BuildShoppingList monta a lista de compras do usuário a partir do carrinho.
func BuildShoppingList(db *gorm.DB, userID int64) (ShoppingList, error) {
	lines, err := CartLines(db, userID)
	if err != nil {
		return ShoppingList{}, err
	}
	return Aggregate(lines), nil
}
