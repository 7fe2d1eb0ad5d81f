package models

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Profile struct {
	Email       string `json:"email,omitempty"`
	Birthdate   string `json:"birthdate,omitempty"`
	University  string `json:"university,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// ProfileUpdate is the body of the profile update call.
type ProfileUpdate struct {
	Birthdate   string `json:"birthdate,omitempty"`
	University  string `json:"university,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type AssessmentHistoryItem struct {
	ID                      int      `json:"id"`
	CreatedAt               string   `json:"created_at"`
	RawPrimaryConcern       string   `json:"raw_primary_concern,omitempty"`
	IssueType               string   `json:"issue_type"`
	Urgency                 string   `json:"urgency"`
	SeverityScore           int      `json:"severity_score"`
	NeedsImmediateResources bool     `json:"needs_immediate_resources"`
	PersonalizedNote        string   `json:"personalized_note,omitempty"`
	Latitude                *float64 `json:"latitude,omitempty"`
	Longitude               *float64 `json:"longitude,omitempty"`
}

type AssessmentHistory struct {
	Email   string                  `json:"email"`
	History []AssessmentHistoryItem `json:"history"`
}
