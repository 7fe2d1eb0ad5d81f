package results

import (
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/dto/responses"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	ColourGreen  = "green"
	ColourYellow = "yellow"
	ColourOrange = "orange"
	ColourRed    = "red"
	ColourBlue   = "blue"
)

const (
	crisisTitle   = "Immediate Support Recommended"
	crisisMessage = "Please consider reaching out to crisis resources right away."
)

func severityColour(score int) string {
	switch score {
	case 1:
		return ColourGreen
	case 2:
		return ColourYellow
	case 3:
		return ColourOrange
	default:
		return ColourRed
	}
}

func urgencyColour(urgency string) string {
	switch urgency {
	case "routine":
		return ColourBlue
	case "soon":
		return ColourYellow
	case "urgent":
		return ColourOrange
	default:
		return ColourRed
	}
}

func humanize(value string) string {
	return strings.ReplaceAll(value, "_", " ")
}

// BuildView turns a stored pathway into what the results screen shows.
func BuildView(pathway *models.StoredPathway) *responses.PathwayView {
	scores := pathway.Scores
	view := &responses.PathwayView{
		IssueType: humanize(scores.IssueType),
		Severity: responses.Severity{
			Score:   scores.SeverityScore,
			Display: severityDisplay(scores.SeverityScore),
			Colour:  severityColour(scores.SeverityScore),
		},
		Urgency: responses.Urgency{
			Level:  scores.Urgency,
			Label:  strings.ToUpper(humanize(scores.Urgency)),
			Colour: urgencyColour(scores.Urgency),
		},
		ConfidencePct:    int(math.Round(scores.Confidence * 100)),
		PersonalizedNote: scores.PersonalizedNote,
		Reasoning:        scores.Reasoning,
		Exercises:        pathway.Exercises,
		Resources:        make([]responses.ResourceCard, 0, len(pathway.RecommendedPathway)),
		Map: responses.PathwayMap{
			UserLocation: pathway.UserLocation,
			Markers:      []responses.MapMarker{},
		},
	}
	if scores.NeedsImmediateResources {
		view.Crisis = &responses.CrisisBanner{Title: crisisTitle, Message: crisisMessage}
	}

	for i, resource := range pathway.RecommendedPathway {
		view.Resources = append(view.Resources, resourceCard(i, resource))
		if coordinates := resource.Coordinates(); coordinates != nil {
			view.Map.Markers = append(view.Map.Markers, responses.MapMarker{
				Index: i,
				Name:  resource.Name,
				Lat:   coordinates.Lat,
				Lng:   coordinates.Lng,
			})
		}
	}
	view.Map.Bounds = bounds(view.Map.Markers, pathway.UserLocation)
	return view
}

func severityDisplay(score int) string {
	return strconv.Itoa(score) + "/4"
}

func resourceCard(index int, resource models.Resource) responses.ResourceCard {
	card := responses.ResourceCard{
		Index:       index,
		Name:        resource.Name,
		Type:        resource.Type,
		Description: resource.Summary(),
		Extra:       resource.Extra,
	}
	contact := strings.TrimSpace(resource.ContactValue())
	if contact == "" {
		return card
	}
	card.Contact = contact
	card.ContactKind = ClassifyContact(contact, resource.Type)
	switch card.ContactKind {
	case responses.ContactKindPhone:
		card.Href = "tel:" + digitsOnly(contact)
	case responses.ContactKindWebsite:
		card.Href = websiteHref(contact)
	}
	return card
}

// ClassifyContact guesses what a contact string is from its shape. Facility
// is used for address-like contacts of facility resources.
func ClassifyContact(contact, resourceType string) responses.ContactKind {
	if isPhone(contact) {
		return responses.ContactKindPhone
	}
	if isWebsite(contact) {
		return responses.ContactKindWebsite
	}
	if strings.Contains(strings.ToLower(resourceType), "facility") {
		return responses.ContactKindFacility
	}
	return responses.ContactKindAddress
}

func isPhone(contact string) bool {
	digits := 0
	for _, r := range contact {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r), strings.ContainsRune("-()+.", r):
		default:
			return false
		}
	}
	return digits >= 3
}

func isWebsite(contact string) bool {
	lower := strings.ToLower(contact)
	if strings.HasPrefix(lower, "http") {
		return true
	}
	if strings.ContainsRune(lower, ' ') {
		return false
	}
	for _, suffix := range []string{".ca", ".com", ".org"} {
		if strings.Contains(lower, suffix) {
			return true
		}
	}
	return false
}

func websiteHref(contact string) string {
	if strings.HasPrefix(strings.ToLower(contact), "http") {
		return contact
	}
	return "https://" + contact
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func bounds(markers []responses.MapMarker, user *models.Coordinates) *responses.MapBounds {
	points := make([]models.Coordinates, 0, len(markers)+1)
	for _, marker := range markers {
		points = append(points, models.Coordinates{Lat: marker.Lat, Lng: marker.Lng})
	}
	if user != nil {
		points = append(points, *user)
	}
	if len(points) == 0 {
		return nil
	}

	b := &responses.MapBounds{
		North: points[0].Lat, South: points[0].Lat,
		East: points[0].Lng, West: points[0].Lng,
	}
	for _, p := range points[1:] {
		b.North = math.Max(b.North, p.Lat)
		b.South = math.Min(b.South, p.Lat)
		b.East = math.Max(b.East, p.Lng)
		b.West = math.Min(b.West, p.Lng)
	}
	return b
}
