package results

import (
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/app/services/shared/clientstate"
	"carerouter-service/internal/app/services/shared/sessionstore"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/responses"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) PutObject(ctx context.Context, bucketName, objectName, contentType string, body []byte) error {
	args := m.Called(ctx, bucketName, objectName, contentType, body)
	return args.Error(0)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

func floatPtr(v float64) *float64 { return &v }

func samplePathway() *models.StoredPathway {
	return &models.StoredPathway{
		Scores: models.Scores{
			IssueType:               "academic_stress",
			Urgency:                 "urgent",
			SeverityScore:           3,
			NeedsImmediateResources: true,
			Confidence:              0.874,
			Reasoning:               "Exams and poor sleep.",
			PersonalizedNote:        "Thanks for sharing.",
		},
		RecommendedPathway: []models.Resource{
			{Name: "Crisis Line", Type: "Phone", Data: "1-833-456-4566"},
			{Name: "Wellness Portal", Type: "Online", Contact: "wellness.example.ca"},
			{
				Name:    "Campus Clinic",
				Type:    "Local Facility",
				Address: "99 University Ave",
				Lat:     floatPtr(44.2253),
				Lng:     floatPtr(-76.4951),
			},
			{Name: "Peer Group", Type: "Community", Data: "Room 204, Student Centre"},
		},
		UserLocation: &models.Coordinates{Lat: 44.2300, Lng: -76.4800},
		Exercises: []models.Exercise{
			{Title: "Grounding", Steps: []string{"Name five things you see"}, Benefit: "Brings you back to the present"},
		},
	}
}

func newTestUsecase(t *testing.T, storage *MockStorage) (*resultsUsecase, *sessionstore.MemoryStore) {
	t.Helper()
	durable := sessionstore.NewMemoryStore()
	state := clientstate.NewClientStateRepository(zap.NewNop(), durable, sessionstore.NewMemoryStore(), clientstate.Options{})
	uc := &resultsUsecase{
		Log:           zap.NewNop(),
		ClientState:   state,
		ExportOptions: ExportOptions{BucketName: "pathways", Expiry: time.Hour},
	}
	if storage != nil {
		uc.Storage = storage
	}
	return uc, durable
}

func TestLoadWithoutPathwayRedirectsToAssessment(t *testing.T) {
	uc, _ := newTestUsecase(t, nil)

	view, redirect, err := uc.Load(context.Background(), "client-1")

	require.NoError(t, err)
	assert.Nil(t, view)
	assert.Equal(t, constvars.ViewAssessment, redirect)
}

func TestLoadWithCorruptPathwayRedirectsToAssessment(t *testing.T) {
	uc, durable := newTestUsecase(t, nil)
	require.NoError(t, durable.Set(context.Background(), "client:client-1:pathway", "{not json", 0))

	view, redirect, err := uc.Load(context.Background(), "client-1")

	require.NoError(t, err)
	assert.Nil(t, view)
	assert.Equal(t, constvars.ViewAssessment, redirect)
}

func TestLoadBuildsView(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase(t, nil)
	require.NoError(t, uc.ClientState.SavePathway(ctx, "client-1", samplePathway()))

	view, redirect, err := uc.Load(ctx, "client-1")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Empty(t, redirect)

	assert.Equal(t, "academic stress", view.IssueType)
	assert.Equal(t, responses.Severity{Score: 3, Display: "3/4", Colour: ColourOrange}, view.Severity)
	assert.Equal(t, responses.Urgency{Level: "urgent", Label: "URGENT", Colour: ColourOrange}, view.Urgency)
	assert.Equal(t, 87, view.ConfidencePct)
	require.NotNil(t, view.Crisis)
	assert.Equal(t, "Immediate Support Recommended", view.Crisis.Title)

	require.Len(t, view.Resources, 4)
	assert.Equal(t, responses.ContactKindPhone, view.Resources[0].ContactKind)
	assert.Equal(t, "tel:18334564566", view.Resources[0].Href)
	assert.Equal(t, responses.ContactKindWebsite, view.Resources[1].ContactKind)
	assert.Equal(t, "https://wellness.example.ca", view.Resources[1].Href)
	assert.Equal(t, responses.ContactKindFacility, view.Resources[2].ContactKind)
	assert.Equal(t, responses.ContactKindAddress, view.Resources[3].ContactKind)

	require.Len(t, view.Map.Markers, 1)
	assert.Equal(t, 2, view.Map.Markers[0].Index)
	require.NotNil(t, view.Map.Bounds)
	assert.Equal(t, responses.MapBounds{North: 44.2300, South: 44.2253, East: -76.4800, West: -76.4951}, *view.Map.Bounds)
}

func TestColourBands(t *testing.T) {
	tests := []struct {
		severity int
		urgency  string
		wantSev  string
		wantUrg  string
	}{
		{1, "routine", ColourGreen, ColourBlue},
		{2, "soon", ColourYellow, ColourYellow},
		{3, "urgent", ColourOrange, ColourOrange},
		{4, "crisis", ColourRed, ColourRed},
		{0, "", ColourRed, ColourRed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantSev, severityColour(tt.severity), "severity %d", tt.severity)
		assert.Equal(t, tt.wantUrg, urgencyColour(tt.urgency), "urgency %q", tt.urgency)
	}
}

func TestClassifyContact(t *testing.T) {
	tests := []struct {
		contact      string
		resourceType string
		want         responses.ContactKind
	}{
		{"988", "Phone", responses.ContactKindPhone},
		{"(613) 533-2506", "Campus", responses.ContactKindPhone},
		{"+1 800.668.6868", "Phone", responses.ContactKindPhone},
		{"https://good2talk.ca", "Online", responses.ContactKindWebsite},
		{"www.camh.ca", "Online", responses.ContactKindWebsite},
		{"mindyourmind.org", "Online", responses.ContactKindWebsite},
		{"146 Stuart St, Kingston", "Local Facility", responses.ContactKindFacility},
		{"146 Stuart St, Kingston", "Clinic", responses.ContactKindAddress},
		{"12", "Phone", responses.ContactKindAddress},
	}
	for _, tt := range tests {
		t.Run(tt.contact, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyContact(tt.contact, tt.resourceType))
		})
	}
}

func TestViewWithoutCoordinatesHasNoBounds(t *testing.T) {
	view := BuildView(&models.StoredPathway{
		Scores:             models.Scores{SeverityScore: 1, Urgency: "routine"},
		RecommendedPathway: []models.Resource{{Name: "Line", Data: "988"}},
	})

	assert.Nil(t, view.Crisis)
	assert.Nil(t, view.Map.Bounds)
	assert.Empty(t, view.Map.Markers)
}

func TestExportInlineWithoutStorage(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase(t, nil)
	require.NoError(t, uc.ClientState.SavePathway(ctx, "client-1", samplePathway()))

	export, redirect, err := uc.Export(ctx, "client-1")

	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Empty(t, export.URL)
	assert.Contains(t, export.Text, "Recommended Resources (4)")
	assert.Contains(t, export.Text, "Severity:   3/4")
	assert.Contains(t, export.Text, "Immediate Support Recommended")
}

func TestExportUploadsAndPresigns(t *testing.T) {
	ctx := context.Background()
	storage := new(MockStorage)
	uc, _ := newTestUsecase(t, storage)
	require.NoError(t, uc.ClientState.SavePathway(ctx, "client-1", samplePathway()))

	storage.On("PutObject", ctx, "pathways", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "pathways/client-1/") && strings.HasSuffix(name, ".txt")
	}), exportContentType, mock.Anything).Return(nil)
	storage.On("GetObjectUrlWithExpiryTime", ctx, "pathways", mock.Anything, time.Hour).
		Return("https://minio.local/pathways/x.txt?sig=1", nil)

	export, _, err := uc.Export(ctx, "client-1")

	require.NoError(t, err)
	assert.Equal(t, "https://minio.local/pathways/x.txt?sig=1", export.URL)
	assert.Empty(t, export.Text)
	storage.AssertExpectations(t)
}

func TestExportUploadFailure(t *testing.T) {
	ctx := context.Background()
	storage := new(MockStorage)
	uc, _ := newTestUsecase(t, storage)
	require.NoError(t, uc.ClientState.SavePathway(ctx, "client-1", samplePathway()))

	storage.On("PutObject", ctx, "pathways", mock.Anything, exportContentType, mock.Anything).
		Return(exceptions.ErrMinioPutObject(errors.New("bucket gone")))

	export, _, err := uc.Export(ctx, "client-1")

	require.Error(t, err)
	assert.Nil(t, export)
	assert.Equal(t, constvars.StatusInternalServerError, exceptions.StatusCode(err))
	storage.AssertNotCalled(t, "GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportWithoutPathwayRedirects(t *testing.T) {
	uc, _ := newTestUsecase(t, new(MockStorage))

	export, redirect, err := uc.Export(context.Background(), "client-1")

	require.NoError(t, err)
	assert.Nil(t, export)
	assert.Equal(t, constvars.ViewAssessment, redirect)
}
