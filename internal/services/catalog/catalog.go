// Package catalog provides the list of symbols offered for selection.
package catalog

import (
	"context"

	"github.com/vadiminshakov/predictor/internal/domain"
)

// Static serves a fixed symbol list.
type Static struct {
	symbols []domain.Symbol
}

// NewStatic creates a catalog over symbols; an empty list falls back to domain.PopularSymbols.
func NewStatic(symbols []domain.Symbol) *Static {
	if len(symbols) == 0 {
		symbols = domain.PopularSymbols
	}
	return &Static{symbols: append([]domain.Symbol(nil), symbols...)}
}

// Symbols returns a copy of the list.
func (s *Static) Symbols(context.Context) ([]domain.Symbol, error) {
	return append([]domain.Symbol(nil), s.symbols...), nil
}
