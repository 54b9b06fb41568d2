// Package intent validates the classifier's XML envelope and turns it
// into a command the use cases can execute.
package intent

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

// Models habitually wrap their output in a markdown code fence even when
// told not to; unwrap it before decoding.
var fenceRe = regexp.MustCompile("(?s)```(?:xml)?\\s*\\n(.*?)\\n\\s*```")

type envelope struct {
	XMLName xml.Name `xml:"response"`
	Intent  string   `xml:"intent"`
	Details *details `xml:"details"`
}

type details struct {
	Metric    *string     `xml:"metric"`
	Date      *string     `xml:"date"`
	Target    *string     `xml:"target"`
	Timeframe *string     `xml:"timeframe"`
	Metrics   *metricList `xml:"metrics"`
}

type metricList struct {
	Entries []metricNode `xml:",any"`
}

type metricNode struct {
	XMLName   xml.Name
	Value     *string `xml:"value,attr"`
	Increment string  `xml:"increment,attr"`
}

// Parse extracts a command from raw classifier output.
//
// Returns ErrMalformedClassifierOutput when no valid envelope can be
// decoded or a required detail node is missing, and ErrUnrecognizedIntent
// when the intent is outside the supported set.
func Parse(raw string) (*domain.Command, error) {
	content := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(content); m != nil {
		content = m[1]
	}

	var env envelope
	if err := xml.Unmarshal([]byte(content), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedClassifierOutput, err)
	}
	if env.Intent == "" || env.Details == nil {
		return nil, fmt.Errorf("%w: missing intent or details node", domain.ErrMalformedClassifierOutput)
	}

	switch domain.Intent(env.Intent) {
	case domain.IntentQuery:
		return parseQuery(env.Details)
	case domain.IntentLog:
		return parseLog(env.Details)
	case domain.IntentSetGoal:
		return parseSetGoal(env.Details)
	case domain.IntentCheckGoals:
		return parseCheckGoals(env.Details)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnrecognizedIntent, env.Intent)
}

func parseQuery(d *details) (*domain.Command, error) {
	if d.Metric == nil || d.Date == nil {
		return nil, fmt.Errorf("%w: query needs metric and date", domain.ErrMalformedClassifierOutput)
	}
	return &domain.Command{
		Intent: domain.IntentQuery,
		Query:  &domain.QueryDetails{Metric: *d.Metric, Date: *d.Date},
	}, nil
}

func parseLog(d *details) (*domain.Command, error) {
	if d.Metrics == nil {
		return nil, fmt.Errorf("%w: log needs a metrics node", domain.ErrMalformedClassifierOutput)
	}
	log := &domain.LogDetails{}
	if d.Date != nil {
		log.Date = *d.Date
	}
	for _, node := range d.Metrics.Entries {
		if node.Value == nil {
			return nil, fmt.Errorf("%w: metric %s has no value", domain.ErrMalformedClassifierOutput, node.XMLName.Local)
		}
		entry := domain.LogEntry{
			Metric:    node.XMLName.Local,
			Value:     *node.Value,
			Increment: node.Increment == "true",
		}
		// Coercion heuristic: anything digits-only becomes a number,
		// except durations and flags which stay literal. Negative and
		// decimal values therefore never count as numbers, so they can
		// never be applied as increments.
		if numericKind(entry.Metric) && domain.IsDigits(entry.Value) {
			entry.Number, _ = strconv.Atoi(entry.Value)
			entry.IsNumber = true
		}
		log.Entries = append(log.Entries, entry)
	}
	return &domain.Command{Intent: domain.IntentLog, Log: log}, nil
}

func parseSetGoal(d *details) (*domain.Command, error) {
	if d.Metric == nil || d.Target == nil {
		return nil, fmt.Errorf("%w: set_goal needs metric and target", domain.ErrMalformedClassifierOutput)
	}
	return &domain.Command{
		Intent:  domain.IntentSetGoal,
		SetGoal: &domain.GoalDetails{Metric: *d.Metric, Target: *d.Target},
	}, nil
}

func parseCheckGoals(d *details) (*domain.Command, error) {
	// A missing timeframe node is a hard failure, not a default: the
	// classifier contract requires it, so its absence means the output
	// is broken.
	if d.Timeframe == nil {
		return nil, fmt.Errorf("%w: check_goals needs a timeframe", domain.ErrMalformedClassifierOutput)
	}
	return &domain.Command{
		Intent:     domain.IntentCheckGoals,
		CheckGoals: &domain.CheckGoalsDetails{Timeframe: *d.Timeframe},
	}, nil
}

// numericKind reports whether the coercion heuristic applies to a metric
// name. Unregistered names get the heuristic too, matching how log
// entries for them are carried (and later skipped) verbatim.
func numericKind(name string) bool {
	m, ok := domain.LookupMetric(name)
	if !ok {
		return true
	}
	return m.Kind == domain.KindInt
}
