package assessments

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultLocationTimeout = 1500 * time.Millisecond
	defaultSubmitTimeout   = 30 * time.Second
)

type FlowOptions struct {
	RevealDelay          time.Duration
	FailureRedirectDelay time.Duration
	LocationTimeout      time.Duration
	SubmitTimeout        time.Duration
	Now                  func() time.Time
}

// FlowDependencies wire a FlowController. Geolocator, Navigator and Observer
// are optional.
type FlowDependencies struct {
	Log         *zap.Logger
	ClientID    string
	Questions   []models.Question
	Client      contracts.CareRouterClient
	ClientState contracts.ClientStateRepository
	Scheduler   contracts.Scheduler
	Geolocator  contracts.Geolocator
	Navigator   contracts.Navigator
	// Observer is called with a fresh snapshot after every state change,
	// outside the controller lock.
	Observer func(models.FlowSnapshot)
}

// FlowController runs one conversational assessment:
//
//	idle -> asking_question(0) -> awaiting_answer(0) -> asking_question(1) -> ...
//	     -> awaiting_answer(N-1) -> submitting -> complete
//
// HTTP handlers and timer callbacks reach it from different goroutines, so
// every transition happens under mu. Network calls run outside the lock.
type FlowController struct {
	mu      sync.Mutex
	deps    FlowDependencies
	options FlowOptions

	state        models.FlowState
	index        int
	transcript   []models.ChatEntry
	responses    models.ResponseMap
	redirectTo   string
	started      bool
	mounted      bool
	submitted    bool
	lastActivity time.Time

	timers []func()
	ctx    context.Context
	cancel context.CancelFunc
}

// NewFlowController returns a mounted controller in the idle state. ctx only
// contributes its values, such as the request id; the controller owns its
// own cancellation.
func NewFlowController(ctx context.Context, deps FlowDependencies, options FlowOptions) *FlowController {
	if options.Now == nil {
		options.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	flowCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	return &FlowController{
		deps:         deps,
		options:      options,
		state:        models.FlowStateIdle,
		responses:    make(models.ResponseMap),
		mounted:      true,
		lastActivity: options.Now(),
		ctx:          flowCtx,
		cancel:       cancel,
	}
}

// Start schedules the first question. It runs at most once per controller;
// with an empty catalog the controller stays idle.
func (c *FlowController) Start() {
	c.mu.Lock()
	if c.started || !c.mounted {
		c.mu.Unlock()
		return
	}
	c.started = true
	if len(c.deps.Questions) == 0 {
		c.mu.Unlock()
		c.deps.Log.Warn("FlowController.Start empty question catalog, staying idle",
			zap.String(constvars.LoggingClientIDKey, c.deps.ClientID),
		)
		return
	}
	c.state = models.FlowStateAskingQuestion
	c.index = 0
	c.scheduleLocked(c.options.RevealDelay, func() { c.reveal(0) })
	c.mu.Unlock()

	c.deps.Log.Info("FlowController.Start called",
		zap.String(constvars.LoggingClientIDKey, c.deps.ClientID),
		zap.Int("question_count", len(c.deps.Questions)),
	)
	c.notify()
}

func (c *FlowController) reveal(index int) {
	c.mu.Lock()
	if !c.mounted || index >= len(c.deps.Questions) ||
		c.state != models.FlowStateAskingQuestion || c.index != index {
		c.mu.Unlock()
		return
	}
	question := c.deps.Questions[index]
	c.appendLocked(models.ChatRoleBot, question.Prompt())
	c.state = models.FlowStateAwaitingAnswer
	c.mu.Unlock()

	c.notify()
}

// SubmitAnswer records the answer to the question on screen. It returns
// false, changing nothing, when no question is awaiting an answer or the
// answer does not fit the question.
func (c *FlowController) SubmitAnswer(answer models.Answer) bool {
	if answer.Kind == models.AnswerKindText {
		answer.Value = strings.TrimSpace(answer.Value)
		if answer.Value == "" {
			return false
		}
	}

	c.mu.Lock()
	if !c.mounted || c.state != models.FlowStateAwaitingAnswer {
		c.mu.Unlock()
		return false
	}
	question := c.deps.Questions[c.index]
	if !answer.Fits(question) {
		c.mu.Unlock()
		c.deps.Log.Debug("FlowController.SubmitAnswer answer does not fit question",
			zap.String(constvars.LoggingClientIDKey, c.deps.ClientID),
			zap.Int(constvars.LoggingQuestionIndexKey, question.ID),
			zap.String("answer_kind", string(answer.Kind)),
		)
		return false
	}
	c.recordLocked(answer, answer.Echo(question))
	c.mu.Unlock()

	c.notify()
	return true
}

// Skip records an empty answer for the question on screen.
func (c *FlowController) Skip() bool {
	c.mu.Lock()
	if !c.mounted || c.state != models.FlowStateAwaitingAnswer {
		c.mu.Unlock()
		return false
	}
	c.recordLocked(models.TextAnswer(""), constvars.ChatMessageSkipped)
	c.mu.Unlock()

	c.notify()
	return true
}

func (c *FlowController) recordLocked(answer models.Answer, echo string) {
	c.appendLocked(models.ChatRoleUser, echo)
	c.responses[c.index] = answer

	if c.index+1 < len(c.deps.Questions) {
		c.index++
		next := c.index
		c.state = models.FlowStateAskingQuestion
		c.scheduleLocked(c.options.RevealDelay, func() { c.reveal(next) })
		return
	}
	c.state = models.FlowStateSubmitting
	c.scheduleLocked(0, c.submit)
}

func (c *FlowController) submit() {
	c.mu.Lock()
	if !c.mounted || c.state != models.FlowStateSubmitting || c.submitted {
		c.mu.Unlock()
		return
	}
	c.submitted = true
	responses := make(models.ResponseMap, len(c.responses))
	for index, answer := range c.responses {
		responses[index] = answer
	}
	ctx := c.ctx
	c.mu.Unlock()

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.deps.Log.Info("FlowController.submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, c.deps.ClientID),
		zap.Int("answer_count", len(responses)),
	)

	location := c.locate(ctx)
	token, err := c.deps.ClientState.Token(ctx, c.deps.ClientID)
	if err != nil {
		c.deps.Log.Warn("FlowController.submit cannot read token, submitting anonymously",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		token = ""
	}

	submission := models.NewAssessmentSubmission(responses, location)
	submitCtx, cancel := context.WithTimeout(ctx, c.submitTimeout())
	pathway, err := c.deps.Client.GeneratePlan(submitCtx, token, submission)
	cancel()

	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		c.deps.Log.Info("FlowController.submit finished after unmount, result dropped",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClientIDKey, c.deps.ClientID),
		)
		return
	}

	if err == nil {
		if location != nil {
			pathway.UserLocation = location
		}
		// Saved under the lock so an Unmount cannot slip in between the
		// mounted check and the write.
		err = c.deps.ClientState.SavePathway(ctx, c.deps.ClientID, pathway)
	}

	c.state = models.FlowStateComplete
	if err != nil {
		c.appendLocked(models.ChatRoleBot, constvars.ChatMessageConnectionFailed)
		c.scheduleLocked(c.options.FailureRedirectDelay, c.redirectToResults)
		c.mu.Unlock()

		c.deps.Log.Error("FlowController.submit error generating plan",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClientIDKey, c.deps.ClientID),
			zap.Error(err),
		)
		c.notify()
		return
	}
	c.redirectTo = constvars.ViewResults
	c.mu.Unlock()

	c.deps.Log.Info("FlowController.submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, c.deps.ClientID),
	)
	c.notify()
	c.navigate(constvars.ViewResults)
}

func (c *FlowController) redirectToResults() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.redirectTo = constvars.ViewResults
	c.mu.Unlock()

	c.notify()
	c.navigate(constvars.ViewResults)
}

// locate asks the geolocator within LocationTimeout. Errors, timeouts and a
// missing geolocator all mean no location.
func (c *FlowController) locate(ctx context.Context) *models.Coordinates {
	if c.deps.Geolocator == nil {
		return nil
	}

	timeout := c.options.LocationTimeout
	if timeout <= 0 {
		timeout = defaultLocationTimeout
	}
	locateCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		coordinates *models.Coordinates
		err         error
	}
	done := make(chan result, 1)
	go func() {
		coordinates, err := c.deps.Geolocator.Locate(locateCtx)
		done <- result{coordinates, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			c.deps.Log.Debug("FlowController.locate location unavailable", zap.Error(r.err))
			return nil
		}
		return r.coordinates
	case <-locateCtx.Done():
		c.deps.Log.Debug("FlowController.locate timed out")
		return nil
	}
}

// Unmount stops the flow. Pending reveals and redirects are canceled and an
// in-flight submission can no longer write anything.
func (c *FlowController) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()

	for _, cancel := range timers {
		cancel()
	}
	c.cancel()
}

func (c *FlowController) Snapshot() models.FlowSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *FlowController) snapshotLocked() models.FlowSnapshot {
	snapshot := models.FlowSnapshot{
		State:          c.state,
		QuestionIndex:  c.index,
		QuestionCount:  len(c.deps.Questions),
		AwaitingAnswer: c.state == models.FlowStateAwaitingAnswer,
		Transcript:     append([]models.ChatEntry(nil), c.transcript...),
		RedirectTo:     c.redirectTo,
		Mounted:        c.mounted,
	}
	if snapshot.AwaitingAnswer {
		question := c.deps.Questions[c.index]
		snapshot.CurrentQuestion = &question
	}
	return snapshot
}

// IdleSince is the time of the last transition.
func (c *FlowController) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

func (c *FlowController) appendLocked(role models.ChatRole, message string) {
	now := c.options.Now()
	c.transcript = append(c.transcript, models.NewChatEntry(role, message, now))
	c.lastActivity = now
}

func (c *FlowController) scheduleLocked(d time.Duration, fn func()) {
	c.timers = append(c.timers, c.deps.Scheduler.After(d, fn))
}

func (c *FlowController) submitTimeout() time.Duration {
	if c.options.SubmitTimeout <= 0 {
		return defaultSubmitTimeout
	}
	return c.options.SubmitTimeout
}

func (c *FlowController) notify() {
	if c.deps.Observer == nil {
		return
	}
	c.deps.Observer(c.Snapshot())
}

func (c *FlowController) navigate(view string) {
	if c.deps.Navigator == nil {
		return
	}
	c.deps.Navigator.Navigate(view)
}
