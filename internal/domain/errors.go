package domain

import "errors"

var (
	// ErrUnrecognizedIntent means the classifier returned a well-formed
	// envelope with an intent outside the supported set. Rendered as a
	// clarification request, never as a crash.
	ErrUnrecognizedIntent = errors.New("unrecognized intent")

	// ErrMalformedClassifierOutput means no valid envelope could be
	// extracted from the classifier response, or a required detail
	// node was missing.
	ErrMalformedClassifierOutput = errors.New("malformed classifier output")

	// ErrInvalidDateToken means a date token was neither a keyword nor
	// a parseable M/D/YYYY date.
	ErrInvalidDateToken = errors.New("invalid date token")

	// ErrMetricNotRecognized means a metric name outside the registry
	// was supplied. Log commands skip such metrics instead of failing;
	// the error exists for callers that want to tighten that.
	ErrMetricNotRecognized = errors.New("metric not recognized")

	// ErrInvalidTimeframe means a check_goals timeframe outside
	// {today, week, month}.
	ErrInvalidTimeframe = errors.New("invalid timeframe")
)
