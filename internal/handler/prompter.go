package handler

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"
)

// Option is one entry of a selection prompt
type Option struct {
	Label string
	Value string
}

// Prompter collects validated input from the user
type Prompter interface {
	Select(message string, options []Option) (string, error)
	MultiSelect(message string, options []Option) ([]string, error)
	Input(message string) (string, error)
	Number(message string) (decimal.Decimal, error)
	Confirm(message string) (bool, error)
}

// errBack is returned when the user picks "return to main menu" mid-flow
var errBack = errors.New("back to main menu")

const backValue = "__back__"

var backOption = Option{Label: "Volver al menú principal", Value: backValue}

// choose prompts a selection that always offers a way back to the main menu
func choose(p Prompter, message string, options []Option) (string, error) {
	value, err := p.Select(message, append(slices.Clip(options), backOption))
	if err != nil {
		return "", err
	}
	if value == backValue {
		return "", errBack
	}
	return value, nil
}

func chooseMany(p Prompter, message string, options []Option) ([]string, error) {
	values, err := p.MultiSelect(message, append(slices.Clip(options), backOption))
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if v == backValue {
			return nil, errBack
		}
	}
	return values, nil
}
