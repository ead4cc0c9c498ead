package types

import "github.com/m-mizutani/goerr/v2"

// ChecklistAnswer represents the auditor's answer to one checklist item
type ChecklistAnswer string

const (
	AnswerCompliant     ChecklistAnswer = "compliant"
	AnswerPartial       ChecklistAnswer = "partial"
	AnswerNonCompliant  ChecklistAnswer = "non_compliant"
	AnswerNotApplicable ChecklistAnswer = "not_applicable"
)

// AllChecklistAnswers returns all valid checklist answers
func AllChecklistAnswers() []ChecklistAnswer {
	return []ChecklistAnswer{
		AnswerCompliant,
		AnswerPartial,
		AnswerNonCompliant,
		AnswerNotApplicable,
	}
}

// IsValid checks if the checklist answer is valid
func (a ChecklistAnswer) IsValid() bool {
	switch a {
	case AnswerCompliant, AnswerPartial, AnswerNonCompliant, AnswerNotApplicable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the checklist answer
func (a ChecklistAnswer) String() string {
	return string(a)
}

// Points returns the risk points this answer contributes to the audit score.
// Not-applicable items are excluded from the denominator separately; their
// contribution here is zero.
func (a ChecklistAnswer) Points() int {
	switch a {
	case AnswerPartial:
		return 1
	case AnswerNonCompliant:
		return 2
	default:
		return 0
	}
}

// ParseChecklistAnswer parses a string into a ChecklistAnswer. Every item must
// carry an explicit answer, so invalid input is rejected.
func ParseChecklistAnswer(s string) (ChecklistAnswer, error) {
	answer := ChecklistAnswer(s)
	if !answer.IsValid() {
		return "", goerr.New("invalid checklist answer", goerr.V("answer", s))
	}
	return answer, nil
}
