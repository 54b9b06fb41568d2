package domain

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentQuery      Intent = "query"
	IntentLog        Intent = "log"
	IntentSetGoal    Intent = "set_goal"
	IntentCheckGoals Intent = "check_goals"
)

// Command is a validated instruction produced by the intent parser.
// Exactly one of the detail fields is non-nil, matching Intent.
type Command struct {
	Intent     Intent
	Query      *QueryDetails
	Log        *LogDetails
	SetGoal    *GoalDetails
	CheckGoals *CheckGoalsDetails
}

// QueryDetails asks for one metric on one date.
type QueryDetails struct {
	Metric string
	Date   string // raw token: "today", "yesterday" or M/D/YYYY
}

// LogEntry is one metric update inside a log command.
type LogEntry struct {
	Metric    string
	Value     string // raw cell text
	Number    int    // set when IsNumber
	IsNumber  bool   // Value was all digits and the metric is numeric
	Increment bool   // add to the stored value instead of overwriting
}

// LogDetails records one or more metric values for a date.
type LogDetails struct {
	Date    string // empty means "today"
	Entries []LogEntry
}

// GoalDetails sets a per-day target for a metric.
type GoalDetails struct {
	Metric string
	Target string // stored as raw text, coerced only at aggregation time
}

// CheckGoalsDetails asks for goal progress over a timeframe.
type CheckGoalsDetails struct {
	Timeframe string // "today", "week" or "month"
}
