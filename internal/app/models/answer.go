package models

import "strings"

type AnswerKind string

const (
	AnswerKindText        AnswerKind = "text"
	AnswerKindChoice      AnswerKind = "choice"
	AnswerKindMultiChoice AnswerKind = "multi-choice"
)

// Answer holds exactly one of a free-text value, a single option value or a
// set of option values, depending on Kind.
type Answer struct {
	Kind   AnswerKind `json:"kind"`
	Value  string     `json:"value,omitempty"`
	Values []string   `json:"values,omitempty"`
}

func TextAnswer(text string) Answer {
	return Answer{Kind: AnswerKindText, Value: text}
}

func ChoiceAnswer(value string) Answer {
	return Answer{Kind: AnswerKindChoice, Value: value}
}

func MultiChoiceAnswer(values ...string) Answer {
	return Answer{Kind: AnswerKindMultiChoice, Values: values}
}

// Fits reports whether the answer shape is the one the question expects.
// Choice answers must also name options the question offers.
func (a Answer) Fits(q Question) bool {
	switch q.Type {
	case QuestionTypeText, "":
		return a.Kind == AnswerKindText
	case QuestionTypeSingleChoice:
		return a.Kind == AnswerKindChoice && q.HasOption(a.Value)
	case QuestionTypeMultiChoice:
		if a.Kind != AnswerKindMultiChoice || len(a.Values) == 0 {
			return false
		}
		for _, value := range a.Values {
			if !q.HasOption(value) {
				return false
			}
		}
		return true
	}
	return false
}

// Text is the value submitted to the backend.
func (a Answer) Text() string {
	if a.Kind == AnswerKindMultiChoice {
		return strings.Join(a.Values, ", ")
	}
	return a.Value
}

// Echo is what the user bubble shows for the answer.
func (a Answer) Echo(q Question) string {
	switch a.Kind {
	case AnswerKindChoice:
		return q.OptionLabel(a.Value)
	case AnswerKindMultiChoice:
		labels := make([]string, 0, len(a.Values))
		for _, value := range a.Values {
			labels = append(labels, q.OptionLabel(value))
		}
		return strings.Join(labels, ", ")
	}
	return a.Value
}

// ResponseMap is keyed by question index.
type ResponseMap map[int]Answer
