package checklist

import (
	"fmt"

	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// Control ties one vulnerability selection to its library entry and the asset
// it was selected for; one checklist item is derived from each.
type Control struct {
	SelectionID   int64
	AssetName     string
	Vulnerability *model.Vulnerability
}

// BuildItems derives checklist items from the given controls. The item key
// embeds the selection ID so answers stay attributable after resubmission of
// the same control on different assets.
func BuildItems(controls []Control) []*model.ChecklistItem {
	items := make([]*model.ChecklistItem, 0, len(controls))
	for _, ctrl := range controls {
		vuln := ctrl.Vulnerability
		items = append(items, &model.ChecklistItem{
			Key:   fmt.Sprintf("av_%d", ctrl.SelectionID),
			Label: vuln.RequiredControl + " [" + ctrl.AssetName + "]",
			NonCompliant: model.FindingTemplate{
				Text:           vuln.Name + " exposure on " + ctrl.AssetName + " is unmitigated",
				Level:          types.RiskHigh,
				Recommendation: vuln.RequiredControl,
			},
			Partial: model.FindingTemplate{
				Text:           vuln.Name + " exposure mitigation is incomplete on " + ctrl.AssetName,
				Level:          types.RiskMedium,
				Recommendation: "Ensure full coverage: " + vuln.RequiredControl,
			},
		})
	}
	return items
}
