package models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AssessmentSubmission is the body of the generate-plan call. Latitude and
// longitude serialize as null when the location is unknown.
type AssessmentSubmission struct {
	PrimaryConcern    string   `json:"primary_concern"`
	AnswerDistress    string   `json:"answer_distress"`
	AnswerFunctioning string   `json:"answer_functioning"`
	AnswerUrgency     string   `json:"answer_urgency"`
	AnswerSafety      string   `json:"answer_safety"`
	AnswerConstraints string   `json:"answer_constraints"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
}

// NewAssessmentSubmission maps answers 0..5 onto the submission fields in
// order. Missing answers become empty strings.
func NewAssessmentSubmission(responses ResponseMap, location *Coordinates) AssessmentSubmission {
	text := func(index int) string {
		if answer, ok := responses[index]; ok {
			return answer.Text()
		}
		return ""
	}

	submission := AssessmentSubmission{
		PrimaryConcern:    text(0),
		AnswerDistress:    text(1),
		AnswerFunctioning: text(2),
		AnswerUrgency:     text(3),
		AnswerSafety:      text(4),
		AnswerConstraints: text(5),
	}
	if location != nil {
		lat, lng := location.Lat, location.Lng
		submission.Latitude = &lat
		submission.Longitude = &lng
	}
	return submission
}
