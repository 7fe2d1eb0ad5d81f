package catalog

import (
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/exceptions"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SubmissionSlots is how many answers the generate-plan call carries.
const SubmissionSlots = 6

var defaultQuestions = []models.Question{
	{
		ID:       0,
		Text:     "What's the main reason you're here today?",
		Subtitle: "Tell me in your own words what brings you to CareRouter.",
		Type:     models.QuestionTypeText,
	},
	{
		ID:       1,
		Text:     "Over the past week, how intense has your emotional distress been?",
		Subtitle: "Think about feelings like overwhelmed, anxious, or emotionally distressed.",
		Type:     models.QuestionTypeText,
	},
	{
		ID:       2,
		Text:     "How much is this affecting your ability to function day-to-day?",
		Subtitle: "Consider work, school, self-care, and social life.",
		Type:     models.QuestionTypeText,
	},
	{
		ID:       3,
		Text:     "How soon do you feel you need support?",
		Subtitle: "Is this something you need help with right away, or can it wait a bit?",
		Type:     models.QuestionTypeText,
	},
	{
		ID:       4,
		Text:     "Which statement best describes your safety right now?",
		Subtitle: "It's important to be honest here. This helps us connect you to the right resources.",
		Note:     "If you are feeling unsafe or worried you might harm yourself, please reach out to a crisis line immediately (e.g., call 988).",
		Type:     models.QuestionTypeText,
	},
	{
		ID:       5,
		Text:     "What could make it hard for you to get help?",
		Subtitle: "Think about things like cost, transportation, language, work schedule, childcare, insurance, or past experiences.",
		Type:     models.QuestionTypeText,
	},
}

// Default returns a copy of the built-in questionnaire.
func Default() []models.Question {
	questions := make([]models.Question, len(defaultQuestions))
	copy(questions, defaultQuestions)
	return questions
}

type catalogFile struct {
	Questions []models.Question `yaml:"questions"`
}

// Load reads a questionnaire from a YAML file. An empty path yields the
// built-in questionnaire.
func Load(path string) ([]models.Question, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, exceptions.ErrCatalogRead(err)
	}
	return Parse(raw)
}

func Parse(raw []byte) ([]models.Question, error) {
	var file catalogFile
	if err := yaml.UnmarshalStrict(raw, &file); err != nil {
		return nil, exceptions.ErrCatalogParse(err)
	}
	if err := Validate(file.Questions); err != nil {
		return nil, err
	}
	return file.Questions, nil
}

// Validate checks what the flow relies on: ids match positions, the list
// fits the submission, and choice questions have options. An empty list is
// valid; the flow then never leaves idle.
func Validate(questions []models.Question) error {
	if len(questions) > SubmissionSlots {
		return exceptions.ErrCatalogInvalid(nil, fmt.Sprintf("%d questions, at most %d are submitted", len(questions), SubmissionSlots))
	}
	for i, question := range questions {
		if question.ID != i {
			return exceptions.ErrCatalogInvalid(nil, fmt.Sprintf("question at position %d has id %d", i, question.ID))
		}
		if question.Text == "" {
			return exceptions.ErrCatalogInvalid(nil, fmt.Sprintf("question %d has no text", i))
		}
		switch question.Type {
		case models.QuestionTypeText:
		case models.QuestionTypeSingleChoice, models.QuestionTypeMultiChoice:
			if len(question.Options) == 0 {
				return exceptions.ErrCatalogInvalid(nil, fmt.Sprintf("choice question %d has no options", i))
			}
		default:
			return exceptions.ErrCatalogInvalid(nil, fmt.Sprintf("question %d has unknown type %q", i, question.Type))
		}
	}
	return nil
}
