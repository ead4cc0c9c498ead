package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

func TestParseResponseStrategy(t *testing.T) {
	t.Run("accepts the four treatment strategies", func(t *testing.T) {
		for _, valid := range types.AllResponseStrategies() {
			strategy, err := types.ParseResponseStrategy(string(valid))
			gt.NoError(t, err).Required()
			gt.Value(t, strategy).Equal(valid)
		}
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, s := range []string{"", "Ignore", "mitigate", "MITIGATE", "Defer"} {
			_, err := types.ParseResponseStrategy(s)
			gt.Error(t, err)
		}
	})
}
