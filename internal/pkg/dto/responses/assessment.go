package responses

import "carerouter-service/internal/app/models"

type Questions struct {
	Questions []models.Question `json:"questions"`
}

type AnswerResult struct {
	Accepted bool                `json:"accepted"`
	Snapshot models.FlowSnapshot `json:"snapshot"`
}
