package action

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Verdict is the immutable output of the risk analyzer for one event.
type Verdict struct {
	Threat   bool     `json:"threat"`
	Severity Severity `json:"severity"`
	Reason   string   `json:"reason"`
}

func NoThreat() Verdict {
	return Verdict{Threat: false, Severity: SeverityLow}
}

func Threat(severity Severity, reason string) Verdict {
	return Verdict{Threat: true, Severity: severity, Reason: reason}
}
