package types

import "github.com/m-mizutani/goerr/v2"

// ResponseStrategy represents the chosen treatment for an identified risk
type ResponseStrategy string

const (
	StrategyMitigate ResponseStrategy = "Mitigate"
	StrategyAccept   ResponseStrategy = "Accept"
	StrategyTransfer ResponseStrategy = "Transfer"
	StrategyAvoid    ResponseStrategy = "Avoid"
)

// AllResponseStrategies returns all valid response strategies
func AllResponseStrategies() []ResponseStrategy {
	return []ResponseStrategy{
		StrategyMitigate,
		StrategyAccept,
		StrategyTransfer,
		StrategyAvoid,
	}
}

// IsValid checks if the response strategy is valid
func (s ResponseStrategy) IsValid() bool {
	switch s {
	case StrategyMitigate, StrategyAccept, StrategyTransfer, StrategyAvoid:
		return true
	default:
		return false
	}
}

// String returns the string representation of the response strategy
func (s ResponseStrategy) String() string {
	return string(s)
}

// ParseResponseStrategy parses a string into a ResponseStrategy. A response
// decision is an explicit human judgment, so invalid input is rejected rather
// than coerced.
func ParseResponseStrategy(s string) (ResponseStrategy, error) {
	strategy := ResponseStrategy(s)
	if !strategy.IsValid() {
		return "", goerr.New("invalid response strategy", goerr.V("strategy", s))
	}
	return strategy, nil
}
