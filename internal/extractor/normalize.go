package extractor

import (
	"strings"

	"flowcase/internal/domain"
	"flowcase/internal/port"
)

// Normalize converts raw model output into domain scenarios, in response
// order. Missing text fields default to the "Not specified in document"
// literal; module names are trimmed and empties dropped. Elements left with
// fewer than two modules are discarded entirely. The schema description asks
// the model for the same constraint, but this filter is the only hard
// guarantee.
func Normalize(raw []port.RawScenario) []domain.Scenario {
	out := make([]domain.Scenario, 0, len(raw))
	for _, s := range raw {
		modules := make(domain.StringList, 0, len(s.Modules))
		for _, m := range s.Modules {
			if trimmed := strings.TrimSpace(m); trimmed != "" {
				modules = append(modules, trimmed)
			}
		}
		if len(modules) < 2 {
			continue
		}

		out = append(out, domain.Scenario{
			Position:            len(out),
			RequirementLocation: orNotSpecified(s.RequirementLocation),
			FlowSummary:         orNotSpecified(s.FlowSummary),
			Modules:             modules,
			TestScenario:        orNotSpecified(s.TestScenario),
			FlowType:            domain.FlowType(orNotSpecified(s.FlowType)),
		})
	}
	return out
}

// JoinModules renders a module list the way the table and CSV display it.
func JoinModules(modules domain.StringList) string {
	return strings.Join(modules, ", ")
}

func orNotSpecified(s string) string {
	if s == "" {
		return domain.NotSpecified
	}
	return s
}
