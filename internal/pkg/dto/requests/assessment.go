package requests

type StartAssessment struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// SubmitAnswer carries exactly one of Text, Choice or Choices.
type SubmitAnswer struct {
	Text    *string  `json:"text" validate:"required_without_all=Choice Choices"`
	Choice  *string  `json:"choice" validate:"required_without_all=Text Choices"`
	Choices []string `json:"choices" validate:"required_without_all=Text Choice,omitempty,dive,required"`
}
