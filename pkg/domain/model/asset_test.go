package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

func TestAssetNormalize(t *testing.T) {
	asset := &model.Asset{
		Confidentiality: 9,
		Integrity:       0,
		Availability:    3,
		PrimaryReq:      types.CIAProperty("confidential"),
	}
	asset.Normalize()

	gt.Value(t, asset.Confidentiality).Equal(5)
	gt.Value(t, asset.Integrity).Equal(1)
	gt.Value(t, asset.Availability).Equal(3)
	gt.Value(t, asset.PrimaryReq).Equal(types.CIAConfidentiality)
}

func TestAssetCriticality(t *testing.T) {
	tests := []struct {
		name     string
		c, i, a  int
		score    int
		expected types.CriticalityLevel
	}{
		{"all minimum", 1, 1, 1, 3, types.CriticalityLow},
		{"mid range", 2, 2, 2, 6, types.CriticalityMedium},
		{"high", 4, 3, 3, 10, types.CriticalityHigh},
		{"all maximum", 5, 5, 5, 15, types.CriticalityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &model.Asset{
				Confidentiality: tt.c,
				Integrity:       tt.i,
				Availability:    tt.a,
			}
			gt.Value(t, asset.CriticalityScore()).Equal(tt.score)
			gt.Value(t, asset.CriticalityLevel()).Equal(tt.expected)
		})
	}
}
