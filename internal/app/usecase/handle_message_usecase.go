package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fardanhakim/onepercent-bot/internal/domain"
	"github.com/fardanhakim/onepercent-bot/internal/intent"
)

const denialMessage = "Sorry, you are not authorized to use this bot."

const welcomeMessage = "Welcome! You can:\n" +
	"- Log your data by saying 'I did 50 pushups today.'\n" +
	"- Query your data by asking 'What was my sleep score yesterday?'\n" +
	"- Set goals with 'set a goal of 10000 steps per day'\n" +
	"- Check progress with 'how are my goals this week?'"

type HandleMessageUsecase struct {
	classifier domain.Classifier
	logUC      *LogActivityUsecase
	queryUC    *QueryMetricUsecase
	goalUC     *SetGoalUsecase
	progressUC *CheckGoalsUsecase

	authorized      map[string]bool
	classifyTimeout time.Duration
	storeTimeout    time.Duration
	logger          *zap.Logger
}

func NewHandleMessageUsecase(
	classifier domain.Classifier,
	logUC *LogActivityUsecase,
	queryUC *QueryMetricUsecase,
	goalUC *SetGoalUsecase,
	progressUC *CheckGoalsUsecase,
	authorizedUsers []string,
	classifyTimeout, storeTimeout time.Duration,
	logger *zap.Logger,
) *HandleMessageUsecase {
	authorized := make(map[string]bool, len(authorizedUsers))
	for _, u := range authorizedUsers {
		authorized[u] = true
	}
	return &HandleMessageUsecase{
		classifier:      classifier,
		logUC:           logUC,
		queryUC:         queryUC,
		goalUC:          goalUC,
		progressUC:      progressUC,
		authorized:      authorized,
		classifyTimeout: classifyTimeout,
		storeTimeout:    storeTimeout,
		logger:          logger,
	}
}

// Execute handles one inbound message end to end and always returns the
// reply text. Every failure in the pipeline is rendered as a one-line
// error reply; nothing propagates to the transport. An empty return
// means "do not reply".
func (uc *HandleMessageUsecase) Execute(ctx context.Context, userID, text string) string {
	// Authorization runs before anything else touches the stores or
	// the classifier.
	if !uc.authorized[userID] {
		return denialMessage
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	switch strings.ToLower(text) {
	case "#start", "#help":
		return welcomeMessage
	}

	cctx, cancel := context.WithTimeout(ctx, uc.classifyTimeout)
	raw, err := uc.classifier.Classify(cctx, text)
	cancel()
	if err != nil {
		return uc.renderError(userID, fmt.Errorf("classifier: %w", err))
	}

	cmd, err := intent.Parse(raw)
	if err != nil {
		if errors.Is(err, domain.ErrUnrecognizedIntent) {
			return "I couldn't determine your intent. Please clarify."
		}
		return uc.renderError(userID, err)
	}

	sctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	var reply string
	switch cmd.Intent {
	case domain.IntentQuery:
		reply, err = uc.queryUC.Execute(sctx, cmd.Query)
	case domain.IntentLog:
		reply, err = uc.logUC.Execute(sctx, cmd.Log)
	case domain.IntentSetGoal:
		reply, err = uc.goalUC.Execute(sctx, cmd.SetGoal)
	case domain.IntentCheckGoals:
		reply, err = uc.progressUC.Execute(sctx, cmd.CheckGoals)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrUnrecognizedIntent, cmd.Intent)
	}
	if err != nil {
		return uc.renderError(userID, err)
	}
	return reply
}

func (uc *HandleMessageUsecase) renderError(userID string, err error) string {
	uc.logger.Error("message handling failed", zap.String("user", userID), zap.Error(err))
	return fmt.Sprintf("An error occurred while processing your request: %v", err)
}
