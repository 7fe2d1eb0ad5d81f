package models

type QuestionType string

const (
	QuestionTypeText         QuestionType = "text"
	QuestionTypeSingleChoice QuestionType = "single-choice"
	QuestionTypeMultiChoice  QuestionType = "multi-choice"
)

type QuestionOption struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Question is one prompt of the assessment. Its position in the catalog is
// its identity while a flow runs.
type Question struct {
	ID       int              `json:"id" yaml:"id"`
	Text     string           `json:"text" yaml:"text"`
	Subtitle string           `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Note     string           `json:"note,omitempty" yaml:"note,omitempty"`
	Type     QuestionType     `json:"type" yaml:"type"`
	Options  []QuestionOption `json:"options,omitempty" yaml:"options,omitempty"`
}

// Prompt is the chat message shown when the question is revealed.
func (q Question) Prompt() string {
	message := q.Text
	for _, extra := range []string{q.Subtitle, q.Note} {
		if extra != "" {
			message += "\n\n" + extra
		}
	}
	return message
}

// OptionLabel returns the label of the option with the given value, or the
// value itself when the question has no such option.
func (q Question) OptionLabel(value string) string {
	for _, option := range q.Options {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}

func (q Question) HasOption(value string) bool {
	for _, option := range q.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}
