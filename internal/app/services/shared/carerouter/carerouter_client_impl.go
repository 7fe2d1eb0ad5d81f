package carerouter

import (
	"bytes"
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	pathLogin             = "/auth/login"
	pathSignup            = "/auth/signup"
	pathGeneratePlan      = "/api/generate-plan"
	pathResources         = "/api/resources"
	pathBookings          = "/api/bookings"
	pathProfile           = "/api/me/profile"
	pathAssessmentHistory = "/api/me/assessments"
)

type careRouterClient struct {
	BaseUrl    string
	Log        *zap.Logger
	HTTPClient *http.Client
}

// NewCareRouterClient talks to the CareRouter backend. Calls are never
// retried; any non-2xx answer is a single failure.
func NewCareRouterClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.CareRouterClient {
	return &careRouterClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		Log:        logger,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *careRouterClient) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	return c.authenticate(ctx, "Login", pathLogin, credentials)
}

func (c *careRouterClient) Signup(ctx context.Context, credentials models.Credentials) (string, error) {
	return c.authenticate(ctx, "Signup", pathSignup, credentials)
}

func (c *careRouterClient) authenticate(ctx context.Context, method, path string, credentials models.Credentials) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("careRouterClient."+method+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := c.do(ctx, constvars.MethodPost, path, "", credentials)
	if err != nil {
		if exceptions.StatusCode(err) == constvars.StatusUnauthorized {
			return "", exceptions.WrapWithError(err, constvars.StatusUnauthorized, constvars.ErrClientInvalidCredentials, constvars.ErrDevBackendUnauthorized)
		}
		return "", err
	}

	// The payload shape is owned by the backend; older builds answered with
	// "token" instead of "access_token".
	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		token = gjson.GetBytes(body, "token").String()
	}
	if token == "" {
		c.Log.Error("careRouterClient."+method+" response has no token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return "", exceptions.ErrMissingAccessToken(nil)
	}

	c.Log.Info("careRouterClient."+method+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return token, nil
}

func (c *careRouterClient) GeneratePlan(ctx context.Context, token string, submission models.AssessmentSubmission) (*models.StoredPathway, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("careRouterClient.GeneratePlan called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("has_location", submission.Latitude != nil),
	)

	body, err := c.do(ctx, constvars.MethodPost, pathGeneratePlan, token, submission)
	if err != nil {
		return nil, err
	}

	pathway := new(models.StoredPathway)
	if err := json.Unmarshal(body, pathway); err != nil {
		c.Log.Error("careRouterClient.GeneratePlan error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err)
	}

	c.Log.Info("careRouterClient.GeneratePlan succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("resource_count", len(pathway.RecommendedPathway)),
	)
	return pathway, nil
}

func (c *careRouterClient) ListResources(ctx context.Context, token string, query contracts.ResourceQuery) ([]models.Resource, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("careRouterClient.ListResources called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	params := url.Values{}
	if query.Lat != nil && query.Lon != nil {
		params.Set("lat", strconv.FormatFloat(*query.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(*query.Lon, 'f', -1, 64))
	}
	if query.Filters != "" {
		params.Set("filters", query.Filters)
	}
	path := pathResources
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	body, err := c.do(ctx, constvars.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	list := gjson.ParseBytes(body)
	if wrapped := list.Get("resources"); wrapped.Exists() {
		list = wrapped
	}
	if !list.IsArray() {
		return nil, exceptions.ErrDecodeResponse(fmt.Errorf("resources payload is not a list"))
	}

	var resources []models.Resource
	if err := json.Unmarshal([]byte(list.Raw), &resources); err != nil {
		return nil, exceptions.ErrDecodeResponse(err)
	}

	c.Log.Info("careRouterClient.ListResources succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("resource_count", len(resources)),
	)
	return resources, nil
}

func (c *careRouterClient) CreateBooking(ctx context.Context, token string, booking models.Booking) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("careRouterClient.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLocationIDKey, booking.ResourceID),
	)

	body, err := c.do(ctx, constvars.MethodPost, pathBookings, token, booking)
	if err != nil {
		return nil, err
	}

	created := new(models.Booking)
	if err := json.Unmarshal(body, created); err != nil {
		return nil, exceptions.ErrDecodeResponse(err)
	}

	c.Log.Info("careRouterClient.CreateBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return created, nil
}

func (c *careRouterClient) ListBookings(ctx context.Context, token string) ([]models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("careRouterClient.ListBookings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := c.do(ctx, constvars.MethodGet, pathBookings, token, nil)
	if err != nil {
		return nil, err
	}

	list := gjson.ParseBytes(body)
	if wrapped := list.Get("bookings"); wrapped.Exists() {
		list = wrapped
	}
	var bookings []models.Booking
	if err := json.Unmarshal([]byte(list.Raw), &bookings); err != nil {
		return nil, exceptions.ErrDecodeResponse(err)
	}
	return bookings, nil
}

func (c *careRouterClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("careRouterClient.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := c.do(ctx, constvars.MethodGet, pathProfile, token, nil)
	if err != nil {
		return nil, err
	}

	profile := new(models.Profile)
	if err := json.Unmarshal(body, profile); err != nil {
		return nil, exceptions.ErrDecodeResponse(err)
	}
	return profile, nil
}

func (c *careRouterClient) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("careRouterClient.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := c.do(ctx, constvars.MethodPut, pathProfile, token, update)
	if err != nil {
		return nil, err
	}

	profile := new(models.Profile)
	if err := json.Unmarshal(body, profile); err != nil {
		return nil, exceptions.ErrDecodeResponse(err)
	}

	c.Log.Info("careRouterClient.UpdateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return profile, nil
}

func (c *careRouterClient) ListAssessmentHistory(ctx context.Context, token string) (*models.AssessmentHistory, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("careRouterClient.ListAssessmentHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := c.do(ctx, constvars.MethodGet, pathAssessmentHistory, token, nil)
	if err != nil {
		return nil, err
	}

	history := new(models.AssessmentHistory)
	if err := json.Unmarshal(body, history); err != nil {
		return nil, exceptions.ErrDecodeResponse(err)
	}
	return history, nil
}

// do sends one request and returns the body of a 2xx answer. A 401 keeps its
// status so callers can send the user to log in; every other failure is a
// bad gateway.
func (c *careRouterClient) do(ctx context.Context, method, path, token string, payload interface{}) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseUrl+path, reqBody)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if payload != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("careRouterClient.do error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBackendPathKey, path),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := gjson.GetBytes(body, "detail").String()
		c.Log.Warn("careRouterClient.do backend returned non-2xx",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBackendPathKey, path),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String("detail", detail),
		)
		statusErr := fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, detail)
		if resp.StatusCode == constvars.StatusUnauthorized {
			return nil, exceptions.ErrBackendUnauthorized(statusErr)
		}
		return nil, exceptions.ErrBackendStatus(statusErr, resp.StatusCode)
	}
	return body, nil
}
