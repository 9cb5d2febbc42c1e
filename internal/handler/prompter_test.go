package handler

import (
	"fmt"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
)

// scriptedPrompter replays canned answers in order. Once the script runs out
// every prompt fails with ErrInterrupted, which ends App.Run.
type scriptedPrompter struct {
	t       *testing.T
	answers []any
	asked   []string
}

func script(t *testing.T, answers ...any) *scriptedPrompter {
	return &scriptedPrompter{t: t, answers: answers}
}

func (p *scriptedPrompter) next(message string) (any, error) {
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		return nil, ErrInterrupted
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func hasValue(options []Option, v string) bool {
	return slices.ContainsFunc(options, func(o Option) bool { return o.Value == v })
}

func (p *scriptedPrompter) Select(message string, options []Option) (string, error) {
	a, err := p.next(message)
	if err != nil {
		return "", err
	}
	v := a.(string)
	if !hasValue(options, v) {
		p.t.Fatalf("%q: %q is not one of the offered options", message, v)
	}
	return v, nil
}

func (p *scriptedPrompter) MultiSelect(message string, options []Option) ([]string, error) {
	a, err := p.next(message)
	if err != nil {
		return nil, err
	}
	vs := a.([]string)
	for _, v := range vs {
		if !hasValue(options, v) {
			p.t.Fatalf("%q: %q is not one of the offered options", message, v)
		}
	}
	return vs, nil
}

func (p *scriptedPrompter) Input(message string) (string, error) {
	a, err := p.next(message)
	if err != nil {
		return "", err
	}
	return a.(string), nil
}

func (p *scriptedPrompter) Number(message string) (decimal.Decimal, error) {
	a, err := p.next(message)
	if err != nil {
		return decimal.Zero, err
	}
	switch n := a.(type) {
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case decimal.Decimal:
		return n, nil
	}
	return decimal.Zero, fmt.Errorf("%q: not a number: %v", message, a)
}

func (p *scriptedPrompter) Confirm(message string) (bool, error) {
	a, err := p.next(message)
	if err != nil {
		return false, err
	}
	return a.(bool), nil
}
