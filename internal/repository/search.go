package repository

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrUnknownField = errors.New("unknown search field")

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SearchQuery filters a collection on one field and optionally sorts the matches.
// An empty SortBy keeps insertion order.
type SearchQuery struct {
	Field  string
	Value  string
	SortBy string
	Order  SortOrder
}

// field describes how one record attribute is matched and compared.
// Exactly one of text, number or date is set.
type field[T any] struct {
	text      func(T) string
	number    func(T) decimal.Decimal
	date      func(T) time.Time
	substring bool // free-text fields match on containment
}

type fieldSet[T any] map[string]field[T]

func (fs fieldSet[T]) search(records []T, q SearchQuery) ([]T, error) {
	f, ok := fs[q.Field]
	if !ok || f.text == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, q.Field)
	}

	matches := make([]T, 0)
	for _, r := range records {
		v := f.text(r)
		if (f.substring && strings.Contains(v, q.Value)) || (!f.substring && v == q.Value) {
			matches = append(matches, r)
		}
	}

	if q.SortBy == "" {
		return matches, nil
	}
	cmp, err := fs.comparator(q.SortBy)
	if err != nil {
		return nil, err
	}
	if q.Order == Desc {
		asc := cmp
		cmp = func(a, b T) int { return asc(b, a) }
	}
	slices.SortStableFunc(matches, cmp)
	return matches, nil
}

func (fs fieldSet[T]) comparator(name string) (func(a, b T) int, error) {
	f, ok := fs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	switch {
	case f.number != nil:
		return func(a, b T) int { return f.number(a).Cmp(f.number(b)) }, nil
	case f.date != nil:
		return func(a, b T) int { return f.date(a).Compare(f.date(b)) }, nil
	default:
		col := collate.New(language.Spanish)
		return func(a, b T) int { return col.CompareString(f.text(a), f.text(b)) }, nil
	}
}
