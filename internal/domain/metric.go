package domain

// ValueKind describes how a metric's cell value is represented.
type ValueKind int

const (
	KindInt      ValueKind = iota // plain integer count
	KindDuration                  // HH:MM:SS string
	KindFlag                      // "Y" / "N"
)

// Metric is one tracked column in the daily record table.
type Metric struct {
	Name   string // canonical name, matches the classifier's XML tag
	Header string // column header in the record table
	Kind   ValueKind
	Col    int // 0-based column index; column 0 is the date
}

// Metrics is the fixed registry. Its order defines the physical column
// order of the record table; adding a metric means migrating the table.
var Metrics = []Metric{
	{Name: "Pushups", Header: "Pushups", Kind: KindInt, Col: 1},
	{Name: "Steps", Header: "Steps", Kind: KindInt, Col: 2},
	{Name: "SleepScore", Header: "Sleep Score", Kind: KindInt, Col: 3},
	{Name: "SleepDuration", Header: "Sleep Duration", Kind: KindDuration, Col: 4},
	{Name: "WorkedOut", Header: "Worked Out", Kind: KindFlag, Col: 5},
}

// LookupMetric finds a registry entry by canonical name or column header.
// The classifier uses both forms depending on intent.
func LookupMetric(name string) (Metric, bool) {
	for _, m := range Metrics {
		if m.Name == name || m.Header == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Default returns the cell value used when a metric is absent from a
// freshly appended row.
func (m Metric) Default() string {
	switch m.Kind {
	case KindDuration:
		return "00:00:00"
	case KindFlag:
		return "N"
	default:
		return "0"
	}
}

// RecordHeader returns the header row of the record table.
func RecordHeader() []string {
	header := make([]string, len(Metrics)+1)
	header[0] = "Date"
	for _, m := range Metrics {
		header[m.Col] = m.Header
	}
	return header
}

// GoalHeader returns the header row of the goal table.
func GoalHeader() []string {
	return []string{"Metric", "Target"}
}

// IsDigits reports whether s is non-empty and composed entirely of ASCII
// digits. This is the coercion heuristic used everywhere a cell or target
// is treated as a number; it deliberately rejects negatives and decimals.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
