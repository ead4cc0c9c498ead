package checklist

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

type baselineFile struct {
	Items []baselineItem `toml:"item"`
}

type baselineItem struct {
	Key          string           `toml:"key"`
	Label        string           `toml:"label"`
	NonCompliant baselineTemplate `toml:"non_compliant"`
	Partial      baselineTemplate `toml:"partial"`
}

type baselineTemplate struct {
	Text           string `toml:"text"`
	Level          string `toml:"level"`
	Recommendation string `toml:"recommendation"`
}

// BaselineItems returns the built-in checklist used when an audit has no
// vulnerability selections.
func BaselineItems() ([]*model.ChecklistItem, error) {
	return parseBaseline(baselineTOML)
}

func parseBaseline(data []byte) ([]*model.ChecklistItem, error) {
	var file baselineFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse baseline TOML")
	}
	if len(file.Items) == 0 {
		return nil, goerr.New("baseline has no checklist items")
	}

	items := make([]*model.ChecklistItem, 0, len(file.Items))
	seen := make(map[string]bool, len(file.Items))
	for _, entry := range file.Items {
		if entry.Key == "" || entry.Label == "" {
			return nil, goerr.New("checklist item needs key and label", goerr.V("key", entry.Key))
		}
		if seen[entry.Key] {
			return nil, goerr.New("duplicate checklist item key", goerr.V("key", entry.Key))
		}
		seen[entry.Key] = true

		nonCompliant, err := toTemplate(entry.Key, entry.NonCompliant)
		if err != nil {
			return nil, err
		}
		partial, err := toTemplate(entry.Key, entry.Partial)
		if err != nil {
			return nil, err
		}

		items = append(items, &model.ChecklistItem{
			Key:          entry.Key,
			Label:        entry.Label,
			NonCompliant: nonCompliant,
			Partial:      partial,
		})
	}
	return items, nil
}

func toTemplate(key string, tmpl baselineTemplate) (model.FindingTemplate, error) {
	level := types.RiskLevel(tmpl.Level)
	if !level.IsValid() {
		return model.FindingTemplate{}, goerr.New("invalid finding level",
			goerr.V("key", key), goerr.V("level", tmpl.Level))
	}
	return model.FindingTemplate{
		Text:           tmpl.Text,
		Level:          level,
		Recommendation: tmpl.Recommendation,
	}, nil
}
