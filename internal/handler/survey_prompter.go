package handler

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/shopspring/decimal"
)

// ErrInterrupted is returned when the user hits Ctrl-C at a prompt
var ErrInterrupted = errors.New("interrupted")

// SurveyPrompter asks questions on the terminal
type SurveyPrompter struct {
	opts []survey.AskOpt
}

func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

func labels(options []Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Label
	}
	return out
}

func (p *SurveyPrompter) ask(q survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	err := survey.AskOne(q, response, append(p.opts, opts...)...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}

func (p *SurveyPrompter) Select(message string, options []Option) (string, error) {
	var idx int
	if err := p.ask(&survey.Select{Message: message, Options: labels(options)}, &idx); err != nil {
		return "", err
	}
	return options[idx].Value, nil
}

func (p *SurveyPrompter) MultiSelect(message string, options []Option) ([]string, error) {
	var idx []int
	if err := p.ask(&survey.MultiSelect{Message: message, Options: labels(options)}, &idx); err != nil {
		return nil, err
	}
	values := make([]string, len(idx))
	for i, j := range idx {
		values[i] = options[j].Value
	}
	return values, nil
}

func (p *SurveyPrompter) Input(message string) (string, error) {
	var answer string
	err := p.ask(&survey.Input{Message: message}, &answer)
	return answer, err
}

func (p *SurveyPrompter) Number(message string) (decimal.Decimal, error) {
	var answer string
	err := p.ask(&survey.Input{Message: message}, &answer, survey.WithValidator(func(ans interface{}) error {
		if _, err := decimal.NewFromString(fmt.Sprint(ans)); err != nil {
			return errors.New("introduzca un número válido")
		}
		return nil
	}))
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(answer)
}

func (p *SurveyPrompter) Confirm(message string) (bool, error) {
	var answer bool
	err := p.ask(&survey.Confirm{Message: message}, &answer)
	return answer, err
}
