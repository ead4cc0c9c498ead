package model_test

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

func testItems(n int) []*model.ChecklistItem {
	items := make([]*model.ChecklistItem, 0, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("item_%d", i)
		items = append(items, &model.ChecklistItem{
			Key:   key,
			Label: fmt.Sprintf("Control %d in place?", i),
			NonCompliant: model.FindingTemplate{
				Text:           fmt.Sprintf("Control %d is missing", i),
				Level:          types.RiskHigh,
				Recommendation: fmt.Sprintf("Implement control %d", i),
			},
			Partial: model.FindingTemplate{
				Text:           fmt.Sprintf("Control %d is incomplete", i),
				Level:          types.RiskMedium,
				Recommendation: fmt.Sprintf("Complete control %d", i),
			},
		})
	}
	return items
}

func TestScoreChecklist(t *testing.T) {
	t.Run("scores points and emits findings per failed item", func(t *testing.T) {
		items := testItems(10)
		answers := map[string]types.ChecklistAnswer{}
		for i := 0; i < 7; i++ {
			answers[fmt.Sprintf("item_%d", i)] = types.AnswerCompliant
		}
		for i := 7; i < 10; i++ {
			answers[fmt.Sprintf("item_%d", i)] = types.AnswerNonCompliant
		}

		result, err := model.ScoreChecklist(items, answers)
		gt.NoError(t, err).Required()

		gt.Value(t, result.RiskScore).Equal(6)
		gt.Value(t, result.RiskLevel).Equal(types.AuditRiskMedium)
		gt.Value(t, result.ComplianceScore).Equal(70.0)
		gt.Array(t, result.Answers).Length(10)
		gt.Array(t, result.Findings).Length(3)
		gt.Value(t, result.Findings[0].Text).Equal("Control 7 is missing")
		gt.Value(t, result.Findings[0].RiskLevel).Equal(types.RiskHigh)
	})

	t.Run("partial answers score one point and use the partial template", func(t *testing.T) {
		items := testItems(2)
		result, err := model.ScoreChecklist(items, map[string]types.ChecklistAnswer{
			"item_0": types.AnswerPartial,
			"item_1": types.AnswerCompliant,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, result.RiskScore).Equal(1)
		gt.Value(t, result.RiskLevel).Equal(types.AuditRiskLow)
		gt.Value(t, result.ComplianceScore).Equal(50.0)
		gt.Array(t, result.Findings).Length(1)
		gt.Value(t, result.Findings[0].Text).Equal("Control 0 is incomplete")
		gt.Value(t, result.Findings[0].RiskLevel).Equal(types.RiskMedium)
	})

	t.Run("not-applicable items leave the denominator", func(t *testing.T) {
		items := testItems(4)
		result, err := model.ScoreChecklist(items, map[string]types.ChecklistAnswer{
			"item_0": types.AnswerCompliant,
			"item_1": types.AnswerNonCompliant,
			"item_2": types.AnswerNotApplicable,
			"item_3": types.AnswerNotApplicable,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, result.RiskScore).Equal(2)
		gt.Value(t, result.ComplianceScore).Equal(50.0)
		gt.Array(t, result.Answers).Length(4)
		gt.Array(t, result.Findings).Length(1)
	})

	t.Run("all not-applicable is full compliance", func(t *testing.T) {
		items := testItems(3)
		result, err := model.ScoreChecklist(items, map[string]types.ChecklistAnswer{
			"item_0": types.AnswerNotApplicable,
			"item_1": types.AnswerNotApplicable,
			"item_2": types.AnswerNotApplicable,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, result.RiskScore).Equal(0)
		gt.Value(t, result.RiskLevel).Equal(types.AuditRiskLow)
		gt.Value(t, result.ComplianceScore).Equal(100.0)
		gt.Array(t, result.Findings).Length(0)
	})

	t.Run("worst case classifies critical", func(t *testing.T) {
		items := testItems(7)
		answers := map[string]types.ChecklistAnswer{}
		for i := 0; i < 7; i++ {
			answers[fmt.Sprintf("item_%d", i)] = types.AnswerNonCompliant
		}
		result, err := model.ScoreChecklist(items, answers)
		gt.NoError(t, err).Required()

		gt.Value(t, result.RiskScore).Equal(14)
		gt.Value(t, result.RiskLevel).Equal(types.AuditRiskCritical)
		gt.Value(t, result.ComplianceScore).Equal(0.0)
	})

	t.Run("unanswered item fails", func(t *testing.T) {
		items := testItems(2)
		_, err := model.ScoreChecklist(items, map[string]types.ChecklistAnswer{
			"item_0": types.AnswerCompliant,
		})
		gt.Error(t, err)
	})

	t.Run("invalid answer fails", func(t *testing.T) {
		items := testItems(1)
		_, err := model.ScoreChecklist(items, map[string]types.ChecklistAnswer{
			"item_0": types.ChecklistAnswer("maybe"),
		})
		gt.Error(t, err)
	})
}
