package models

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

type Scores struct {
	IssueType               string  `json:"issue_type"`
	Urgency                 string  `json:"urgency"`
	SeverityScore           int     `json:"severity_score"`
	NeedsImmediateResources bool    `json:"needs_immediate_resources"`
	Confidence              float64 `json:"confidence"`
	Reasoning               string  `json:"reasoning"`
	PersonalizedNote        string  `json:"personalized_note"`

	// Extra keeps score keys this service does not read.
	Extra map[string]json.RawMessage `json:"-"`
}

type scoresFields Scores

var scoresKnownKeys = []string{
	"issue_type", "urgency", "severity_score", "needs_immediate_resources",
	"confidence", "reasoning", "personalized_note",
}

func (s Scores) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(scoresFields(s))
	if err != nil {
		return nil, err
	}
	return mergeExtra(known, s.Extra)
}

func (s *Scores) UnmarshalJSON(data []byte) error {
	var fields scoresFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, scoresKnownKeys...)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*s = Scores(fields)
	return nil
}

type Exercise struct {
	Title   string   `json:"title"`
	Steps   []string `json:"steps"`
	Benefit string   `json:"benefit"`
}

// Resource is one recommended support option. The backend builds these
// loosely, so any key the typed fields cannot hold verbatim (unknown keys,
// empty or mistyped known keys) is kept in Extra and written back as is.
type Resource struct {
	Name        string
	Type        string
	Description string
	Desc        string
	Data        string
	Contact     string
	Address     string
	Lat         *float64
	Lng         *float64
	Extra       map[string]interface{}
}

type resourceFields struct {
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Desc        string   `json:"desc,omitempty"`
	Data        string   `json:"data,omitempty"`
	Contact     string   `json:"contact,omitempty"`
	Address     string   `json:"address,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

func (r Resource) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(resourceFields{
		Name:        r.Name,
		Type:        r.Type,
		Description: r.Description,
		Desc:        r.Desc,
		Data:        r.Data,
		Contact:     r.Contact,
		Address:     r.Address,
		Lat:         r.Lat,
		Lng:         r.Lng,
	})
	if err != nil {
		return nil, err
	}

	var merged map[string]interface{}
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	// Extra wins: a key only lands there when the typed field could not
	// reproduce the received value.
	for key, value := range r.Extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Resource{}
	for key, value := range raw {
		var kept bool
		switch key {
		case "name":
			kept = readString(value, &r.Name)
		case "type":
			kept = readString(value, &r.Type)
		case "description":
			kept = readString(value, &r.Description)
		case "desc":
			kept = readString(value, &r.Desc)
		case "data":
			kept = readString(value, &r.Data)
		case "contact":
			kept = readString(value, &r.Contact)
		case "address":
			kept = readString(value, &r.Address)
		case "lat":
			r.Lat, kept = readFloat(value)
		case "lng":
			r.Lng, kept = readFloat(value)
		}
		if kept {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]interface{})
		}
		r.Extra[key] = value
	}
	return nil
}

// readString reports whether value is a non-empty string, which is the only
// shape omitempty marshalling gives back unchanged.
func readString(value interface{}, target *string) bool {
	text, ok := value.(string)
	if !ok || text == "" {
		return false
	}
	*target = text
	return true
}

// readFloat also accepts numeric strings for coordinates, but then reports
// the value as not kept so the original string is written back.
func readFloat(value interface{}) (*float64, bool) {
	switch number := value.(type) {
	case float64:
		return &number, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
		if err != nil {
			return nil, false
		}
		return &parsed, false
	}
	return nil, false
}

// Summary prefers the long description.
func (r Resource) Summary() string {
	if r.Description != "" {
		return r.Description
	}
	return r.Desc
}

// ContactValue is the string used to reach the resource.
func (r Resource) ContactValue() string {
	for _, candidate := range []string{r.Data, r.Contact, r.Address} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func (r Resource) Coordinates() *Coordinates {
	if r.Lat == nil || r.Lng == nil {
		return nil
	}
	return &Coordinates{Lat: *r.Lat, Lng: *r.Lng}
}

// StoredPathway is the generate-plan response as persisted for the results
// view, with the location used for the request merged in. Top-level keys the
// service does not read survive in Extra.
type StoredPathway struct {
	Scores             Scores       `json:"scores"`
	RecommendedPathway []Resource   `json:"recommended_pathway"`
	UserLocation       *Coordinates `json:"user_location,omitempty"`
	Exercises          []Exercise   `json:"exercises,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type storedPathwayFields StoredPathway

var storedPathwayKnownKeys = []string{"scores", "recommended_pathway", "user_location", "exercises"}

func (p StoredPathway) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(storedPathwayFields(p))
	if err != nil {
		return nil, err
	}
	return mergeExtra(known, p.Extra)
}

func (p *StoredPathway) UnmarshalJSON(data []byte) error {
	var fields storedPathwayFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := splitExtra(data, storedPathwayKnownKeys...)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*p = StoredPathway(fields)
	return nil
}

// splitExtra returns the keys of a JSON object not listed in known, or nil
// when there are none.
func splitExtra(data []byte, known ...string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(raw, key)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

func mergeExtra(known []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return known, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}
