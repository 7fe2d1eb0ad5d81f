package cli

import (
	"bufio"
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/app/services/core/assessments"
	"carerouter-service/internal/app/services/shared/geolocation"
	"carerouter-service/internal/app/services/shared/scheduler"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

const skipCommand = "/skip"

var errInvalidChoice = errors.New("invalid choice")

func init() {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Take the assessment and get a support pathway",
		RunE:  withApp(runAssess),
	}
	cmd.Flags().Float64("lat", 0, "Latitude used to find nearby resources")
	cmd.Flags().Float64("lng", 0, "Longitude used to find nearby resources")
	cmd.Flags().Duration("reveal-delay", 600*time.Millisecond, "Pause before each question appears")

	RootCmd.AddCommand(cmd)
}

func runAssess(cmd *cobra.Command, args []string, a *app) error {
	var location *models.Coordinates
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		location = geolocation.FromPair(&lat, &lng)
	}

	revealDelay, _ := cmd.Flags().GetDuration("reveal-delay")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Answer each question, or type %s to skip it. Press Ctrl-D to leave.\n\n", skipCommand)

	view, err := runAssessment(cmd.Context(), os.Stdin, out, assessments.FlowDependencies{
		Log:         a.serviceLog,
		ClientID:    a.clientID,
		Questions:   a.questions,
		Client:      a.client,
		ClientState: a.clientState,
		Scheduler:   scheduler.NewTimerScheduler(),
		Geolocator:  geolocation.Static(location),
	}, assessments.FlowOptions{
		RevealDelay:          revealDelay,
		FailureRedirectDelay: a.internalConfig.Flow.FailureRedirectDelay,
		LocationTimeout:      a.internalConfig.Flow.LocationTimeout,
		SubmitTimeout:        a.internalConfig.Flow.SubmitTimeout,
	})
	if err != nil {
		return err
	}
	if view == "" {
		fmt.Fprintln(out, "\nAssessment left unfinished.")
		return nil
	}
	a.log.WithField("view", view).Debug("assessment finished")
	fmt.Fprintln(out, "\nRun `carerouter results` to see your pathway.")
	return nil
}

// chatPrinter writes new transcript entries as they appear and numbers the
// options of choice questions.
type chatPrinter struct {
	mu           sync.Mutex
	out          io.Writer
	printed      int
	lastPrompted int
	prompted     chan struct{}
}

func newChatPrinter(out io.Writer) *chatPrinter {
	return &chatPrinter{out: out, lastPrompted: -1, prompted: make(chan struct{}, 1)}
}

// observe is called from timer goroutines as well as the input loop. Stale
// snapshots print nothing.
func (p *chatPrinter) observe(snapshot models.FlowSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for ; p.printed < len(snapshot.Transcript); p.printed++ {
		entry := snapshot.Transcript[p.printed]
		speaker := "CareRouter"
		if entry.Role == models.ChatRoleUser {
			speaker = "You"
		}
		fmt.Fprintf(p.out, "%s: %s\n", speaker, entry.Message)
	}

	if !snapshot.AwaitingAnswer || snapshot.CurrentQuestion == nil || snapshot.QuestionIndex <= p.lastPrompted {
		return
	}
	p.lastPrompted = snapshot.QuestionIndex
	question := snapshot.CurrentQuestion
	for i, option := range question.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option.Label)
	}
	if question.Type == models.QuestionTypeMultiChoice {
		fmt.Fprintln(p.out, "  (pick one or more, separated by commas)")
	}
	select {
	case p.prompted <- struct{}{}:
	default:
	}
}

// runAssessment drives one flow from line based input. It returns the view
// the flow navigated to, or "" when the input ended first.
func runAssessment(ctx context.Context, in io.Reader, out io.Writer, deps assessments.FlowDependencies, options assessments.FlowOptions) (string, error) {
	printer := newChatPrinter(out)
	navigated := make(chan string, 1)
	var once sync.Once

	deps.Observer = printer.observe
	deps.Navigator = contracts.NavigatorFunc(func(view string) {
		once.Do(func() { navigated <- view })
	})

	flow := assessments.NewFlowController(ctx, deps, options)
	defer flow.Unmount()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	flow.Start()
	if len(deps.Questions) == 0 {
		return "", nil
	}

	for {
		select {
		case view := <-navigated:
			return view, nil
		case <-ctx.Done():
			return "", ctx.Err()
		case <-printer.prompted:
		}

		for answered := false; !answered; {
			select {
			case view := <-navigated:
				return view, nil
			case <-ctx.Done():
				return "", ctx.Err()
			case line, ok := <-lines:
				if !ok {
					return "", nil
				}
				answered = submitLine(flow, out, line)
			}
		}
	}
}

func submitLine(flow *assessments.FlowController, out io.Writer, line string) bool {
	snapshot := flow.Snapshot()
	if snapshot.CurrentQuestion == nil {
		return false
	}
	line = strings.TrimSpace(line)
	if line == skipCommand {
		return flow.Skip()
	}
	if line == "" {
		return false
	}

	answer, err := parseAnswer(*snapshot.CurrentQuestion, line)
	if err != nil {
		fmt.Fprintf(out, "Please pick from the numbered options, or type %s.\n", skipCommand)
		return false
	}
	return flow.SubmitAnswer(answer)
}

// parseAnswer reads a line as the answer to question. Options may be given
// by number, value or label.
func parseAnswer(question models.Question, line string) (models.Answer, error) {
	switch question.Type {
	case models.QuestionTypeSingleChoice:
		value, err := optionValue(question, line)
		if err != nil {
			return models.Answer{}, err
		}
		return models.ChoiceAnswer(value), nil
	case models.QuestionTypeMultiChoice:
		var values []string
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			value, err := optionValue(question, part)
			if err != nil {
				return models.Answer{}, err
			}
			values = append(values, value)
		}
		if len(values) == 0 {
			return models.Answer{}, errInvalidChoice
		}
		return models.MultiChoiceAnswer(values...), nil
	}
	return models.TextAnswer(line), nil
}

func optionValue(question models.Question, input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(question.Options) {
			return "", errInvalidChoice
		}
		return question.Options[n-1].Value, nil
	}
	for _, option := range question.Options {
		if strings.EqualFold(option.Value, input) || strings.EqualFold(option.Label, input) {
			return option.Value, nil
		}
	}
	return "", errInvalidChoice
}
