package model

import (
	"math"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// FindingTemplate is the finding emitted when an item is answered at one
// non-compliant tier.
type FindingTemplate struct {
	Text           string
	Level          types.RiskLevel
	Recommendation string
}

// ChecklistItem is one question of an audit checklist, with the finding
// templates for its two failure tiers. Compliant and not-applicable answers
// never produce findings, so no templates exist for them.
type ChecklistItem struct {
	Key          string
	Label        string
	NonCompliant FindingTemplate
	Partial      FindingTemplate
}

// AuditAnswer is one persisted checklist answer. The full answer set of an
// audit is replaced on each submission; there is no partial save.
type AuditAnswer struct {
	ID       string
	AuditID  int64
	Question string
	Answer   types.ChecklistAnswer

	CreatedAt time.Time
}

// Finding is one auto-generated audit finding. Findings are a pure derivation
// of the answer set and are regenerated with it, never edited independently.
type Finding struct {
	ID             string
	AuditID        int64
	Text           string
	RiskLevel      types.RiskLevel
	Recommendation string

	CreatedAt time.Time
}

// ChecklistResult is the outcome of scoring one checklist submission.
// RiskScore/RiskLevel use the checklist point scale, which is deliberately
// distinct from the weighted risk-analysis scale.
type ChecklistResult struct {
	RiskScore       int
	RiskLevel       types.AuditRiskLevel
	ComplianceScore float64
	Answers         []*AuditAnswer
	Findings        []*Finding
}

// ScoreChecklist scores an ordered checklist against its answers:
// compliant and not-applicable items score 0 points, partial 1,
// non-compliant 2; not-applicable items are excluded from the compliance
// denominator. Every item must carry a valid answer. When all items are
// marked not-applicable the compliance score is 100 by definition, not a
// division error. Pure computation; the IDs of the produced rows are left
// empty for the caller to assign.
func ScoreChecklist(items []*ChecklistItem, answers map[string]types.ChecklistAnswer) (*ChecklistResult, error) {
	result := &ChecklistResult{
		Answers:  make([]*AuditAnswer, 0, len(items)),
		Findings: []*Finding{},
	}

	compliantCount := 0
	naCount := 0

	for _, item := range items {
		answer, ok := answers[item.Key]
		if !ok {
			return nil, goerr.New("checklist item not answered", goerr.V("key", item.Key))
		}
		if !answer.IsValid() {
			return nil, goerr.New("invalid checklist answer",
				goerr.V("key", item.Key), goerr.V("answer", answer))
		}

		result.Answers = append(result.Answers, &AuditAnswer{
			Question: item.Label,
			Answer:   answer,
		})

		if answer == types.AnswerNotApplicable {
			naCount++
			continue
		}

		result.RiskScore += answer.Points()
		if answer == types.AnswerCompliant {
			compliantCount++
		}

		switch answer {
		case types.AnswerNonCompliant:
			result.Findings = append(result.Findings, findingFromTemplate(item.NonCompliant))
		case types.AnswerPartial:
			result.Findings = append(result.Findings, findingFromTemplate(item.Partial))
		}
	}

	result.RiskLevel = types.ClassifyAuditRiskScore(result.RiskScore)

	applicable := len(items) - naCount
	if applicable > 0 {
		result.ComplianceScore = math.Round(float64(compliantCount)/float64(applicable)*100*100) / 100
	} else {
		result.ComplianceScore = 100
	}

	return result, nil
}

func findingFromTemplate(tmpl FindingTemplate) *Finding {
	return &Finding{
		Text:           tmpl.Text,
		RiskLevel:      tmpl.Level,
		Recommendation: tmpl.Recommendation,
	}
}
