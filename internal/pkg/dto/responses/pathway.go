package responses

import "carerouter-service/internal/app/models"

type ContactKind string

const (
	ContactKindPhone    ContactKind = "phone"
	ContactKindWebsite  ContactKind = "website"
	ContactKindAddress  ContactKind = "address"
	ContactKindFacility ContactKind = "facility"
)

type Severity struct {
	Score   int    `json:"score"`
	Display string `json:"display"`
	Colour  string `json:"colour"`
}

type Urgency struct {
	Level  string `json:"level"`
	Label  string `json:"label"`
	Colour string `json:"colour"`
}

type CrisisBanner struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type ResourceCard struct {
	Index       int                    `json:"index"`
	Name        string                 `json:"name"`
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Contact     string                 `json:"contact,omitempty"`
	ContactKind ContactKind            `json:"contact_kind,omitempty"`
	Href        string                 `json:"href,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

type MapMarker struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type MapBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

type PathwayMap struct {
	UserLocation *models.Coordinates `json:"user_location,omitempty"`
	Markers      []MapMarker         `json:"markers"`
	Bounds       *MapBounds          `json:"bounds,omitempty"`
}

type PathwayView struct {
	IssueType        string            `json:"issue_type"`
	Severity         Severity          `json:"severity"`
	Urgency          Urgency           `json:"urgency"`
	ConfidencePct    int               `json:"confidence_pct"`
	Crisis           *CrisisBanner     `json:"crisis,omitempty"`
	PersonalizedNote string            `json:"personalized_note,omitempty"`
	Reasoning        string            `json:"reasoning,omitempty"`
	Exercises        []models.Exercise `json:"exercises,omitempty"`
	Resources        []ResourceCard    `json:"resources"`
	Map              PathwayMap        `json:"map"`
}

// PathwayExport points at the printable pathway. Without object storage the
// text is returned inline.
type PathwayExport struct {
	ObjectName string `json:"object_name,omitempty"`
	URL        string `json:"url,omitempty"`
	Text       string `json:"text,omitempty"`
}
