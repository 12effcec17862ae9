package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"hotel_ops/internal/domain"
)

// DefaultMenu is what the kitchen offers before any change.
var DefaultMenu = []string{"Pasta", "Pizza", "Salad", "Steak", "Dessert"}

// Menu is the list of dishes the culinary staff can serve. Dish names match case-insensitively.
type Menu struct {
	items []string
}

// NewMenu starts from items, or from DefaultMenu when none are given.
// Blank entries and case-insensitive duplicates are skipped; use NewMenuStrict
// to have them reported.
func NewMenu(items ...string) *Menu {
	m, _ := NewMenuStrict(items...)
	return m
}

// NewMenuStrict is NewMenu that also returns every rejected entry, joined.
// The menu is always usable and holds the accepted items.
func NewMenuStrict(items ...string) (*Menu, error) {
	if len(items) == 0 {
		items = DefaultMenu
	}
	m := &Menu{}
	var errs []error
	for _, it := range items {
		if err := m.Add(it); err != nil {
			errs = append(errs, err)
		}
	}
	return m, errors.Join(errs...)
}

func (m *Menu) Add(item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return fmt.Errorf("menu item is empty: %w", domain.ErrInvalidArgument)
	}
	if m.index(item) >= 0 {
		return fmt.Errorf("menu item %q: %w", item, domain.ErrDuplicateKey)
	}
	m.items = append(m.items, item)
	return nil
}

func (m *Menu) Remove(item string) error {
	i := m.index(strings.TrimSpace(item))
	if i < 0 {
		return fmt.Errorf("menu item %q: %w", item, domain.ErrNotFound)
	}
	m.items = slices.Delete(m.items, i, i+1)
	return nil
}

// Lookup returns the canonical spelling of item.
func (m *Menu) Lookup(item string) (string, bool) {
	i := m.index(strings.TrimSpace(item))
	if i < 0 {
		return "", false
	}
	return m.items[i], true
}

func (m *Menu) Items() []string { return slices.Clone(m.items) }

func (m *Menu) index(item string) int {
	return slices.IndexFunc(m.items, func(s string) bool { return strings.EqualFold(s, item) })
}
