// Package check evaluates kingdom skill checks into degrees of success.
//
// A check compares a d20 roll plus modifier against a difficulty class and
// produces one of four ordinal outcomes. Beating the DC by 10 or more is a
// critical success; missing it by 10 or more is a critical failure. A
// natural 20 upgrades the outcome one step and a natural 1 downgrades it
// one step.
package check

// Outcome is one of the four ordinal results of a check.
type Outcome int

const (
	// OutcomeUnspecified represents a missing or unrecognized outcome.
	OutcomeUnspecified Outcome = iota
	// OutcomeCriticalFailure indicates the check missed the DC by 10 or more.
	OutcomeCriticalFailure
	// OutcomeFailure indicates the check missed the DC by less than 10.
	OutcomeFailure
	// OutcomeSuccess indicates the check met or beat the DC by less than 10.
	OutcomeSuccess
	// OutcomeCriticalSuccess indicates the check beat the DC by 10 or more.
	OutcomeCriticalSuccess
)

const criticalMargin = 10

// String returns the wire form of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCriticalSuccess:
		return "criticalSuccess"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCriticalFailure:
		return "criticalFailure"
	default:
		return "unspecified"
	}
}

// Label returns a human-readable label for the outcome.
// Unrecognized outcomes fall back to a neutral label.
func (o Outcome) Label() string {
	switch o {
	case OutcomeCriticalSuccess:
		return "Critical Success"
	case OutcomeSuccess:
		return "Success"
	case OutcomeFailure:
		return "Failure"
	case OutcomeCriticalFailure:
		return "Critical Failure"
	default:
		return "Result"
	}
}

// IsValid reports whether the outcome is one of the four check results.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeCriticalFailure, OutcomeFailure, OutcomeSuccess, OutcomeCriticalSuccess:
		return true
	default:
		return false
	}
}

// IsSuccess reports whether the outcome counts as a success.
func (o Outcome) IsSuccess() bool {
	return o == OutcomeSuccess || o == OutcomeCriticalSuccess
}

// ParseOutcome parses a wire-form outcome string.
// Unrecognized values parse to OutcomeUnspecified.
func ParseOutcome(value string) Outcome {
	switch value {
	case "criticalSuccess":
		return OutcomeCriticalSuccess
	case "success":
		return OutcomeSuccess
	case "failure":
		return OutcomeFailure
	case "criticalFailure":
		return OutcomeCriticalFailure
	default:
		return OutcomeUnspecified
	}
}

// Degree returns the outcome from total vs difficulty class, before any
// natural-die adjustment.
func Degree(total, dc int) Outcome {
	margin := total - dc
	switch {
	case margin >= criticalMargin:
		return OutcomeCriticalSuccess
	case margin >= 0:
		return OutcomeSuccess
	case margin > -criticalMargin:
		return OutcomeFailure
	default:
		return OutcomeCriticalFailure
	}
}

// AdjustForNatural upgrades the outcome one step on a natural 20 and
// downgrades it one step on a natural 1. Other die values leave the
// outcome unchanged.
func AdjustForNatural(outcome Outcome, die int) Outcome {
	switch die {
	case 20:
		if outcome < OutcomeCriticalSuccess {
			return outcome + 1
		}
	case 1:
		if outcome > OutcomeCriticalFailure {
			return outcome - 1
		}
	}
	return outcome
}

// Result captures a fully evaluated check.
type Result struct {
	Die      int
	Modifier int
	Total    int
	DC       int
	Margin   int
	Outcome  Outcome
}

// Evaluate computes the outcome of a d20 check from its die value,
// modifier, and difficulty class.
func Evaluate(die, modifier, dc int) Result {
	total := die + modifier
	outcome := AdjustForNatural(Degree(total, dc), die)
	return Result{
		Die:      die,
		Modifier: modifier,
		Total:    total,
		DC:       dc,
		Margin:   total - dc,
		Outcome:  outcome,
	}
}
