package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the console output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// CounterType is the JaCoCo classification of what a counter measures.
	CounterType string

	// MutationStatus is the outcome of a single mutant.
	MutationStatus string

	// ReportKind identifies one of the report pipelines.
	ReportKind string

	// StandardID identifies a test quality standard.
	StandardID string

	// Suite identifies which test suite an artifact belongs to.
	Suite string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All run tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// JaCoCo counter types.
const (
	InstructionCounter CounterType = "INSTRUCTION"
	MethodCounter      CounterType = "METHOD"
	BranchCounter      CounterType = "BRANCH"
	LineCounter        CounterType = "LINE"
	UnknownCounter     CounterType = "UNKNOWN"
)

// PIT mutation statuses.
const (
	KilledStatus      MutationStatus = "KILLED"
	SurvivedStatus    MutationStatus = "SURVIVED"
	NoCoverageStatus  MutationStatus = "NO_COVERAGE"
	TimedOutStatus    MutationStatus = "TIMED_OUT"
	MemoryErrorStatus MutationStatus = "MEMORY_ERROR"
	RunErrorStatus    MutationStatus = "RUN_ERROR"
	NonViableStatus   MutationStatus = "NON_VIABLE"
	UnknownStatus     MutationStatus = "UNKNOWN"
)

// Report pipelines.
const (
	CoverageReport  ReportKind = "coverage"
	MutationReport  ReportKind = "mutation"
	ViolationReport ReportKind = "violations"
	StandardsReport ReportKind = "standards"
)

// Test suites under comparison.
const (
	ManualSuite Suite = "manual"
	AISuite     Suite = "ai"
)

// Title returns the display title of the suite.
func (s Suite) Title() string {
	switch s {
	case ManualSuite:
		return "Manual Unit Tests"
	case AISuite:
		return "AI-Generated Unit Tests"
	default:
		return string(s)
	}
}

// Defaults used when an artifact omits an optional field.
const (
	UnknownValue         = "Unknown"
	NoDescriptionMessage = "No description"
	MissingLineNumber    = -1
)

// AllCounterTypes lists the counter types in JaCoCo report order.
var AllCounterTypes = []CounterType{InstructionCounter, BranchCounter, LineCounter, MethodCounter}

// AllReportKinds lists every report pipeline in execution order.
var AllReportKinds = []ReportKind{CoverageReport, MutationReport, ViolationReport, StandardsReport}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid run tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
