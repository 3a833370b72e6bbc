// Package services concentra as operações do domínio (receitas, favoritos,
// carrinho, assinaturas, lista de compras). Nada aqui conhece HTTP: o usuário
// autenticado chega sempre como parâmetro explícito.
package services

import (
	"errors"
	"fmt"
)

// Categorias de erro. Os tipos abaixo fazem Unwrap para uma delas,
// então o chamador classifica com errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// ValidationError aponta o campo do payload que foi rejeitado.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DuplicateError: tentativa de adicionar um vínculo que já existe.
type DuplicateError struct {
	What string
}

func (e *DuplicateError) Error() string { return e.What + " already exists" }

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// NotFoundError: vínculo ausente na remoção ou referência a registro inexistente.
type NotFoundError struct {
	What string
	// Entry indica que o que falta é o próprio vínculo (favorito, carrinho,
	// assinatura), não o registro referenciado.
	Entry bool
}

func (e *NotFoundError) Error() string { return e.What + " not found" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError: operação proibida pelo estado das partes (ex.: assinar a si mesmo).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ForbiddenError: o ator não pode alterar o recurso.
type ForbiddenError struct {
	Action string
}

func (e *ForbiddenError) Error() string { return "not allowed to " + e.Action }

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }
