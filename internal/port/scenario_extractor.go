package port

import "context"

// RawScenario is one element of the structured reply, exactly as the model
// returned it. Field names mirror the tool schema.
type RawScenario struct {
	RequirementLocation string   `json:"requirement_location"`
	FlowSummary         string   `json:"integration_flow_summary"`
	Modules             []string `json:"related_modules_functions_systems"`
	TestScenario        string   `json:"test_scenario_integration"`
	FlowType            string   `json:"flow_type"`
}

// ExtractInput carries the decoded document text to extract from.
type ExtractInput struct {
	DocumentText string
}

// ExtractOutput contains the un-normalized structured reply.
type ExtractOutput struct {
	Scenarios  []RawScenario
	ModelUsed  string
	TokensUsed int
}

// ScenarioExtractor abstracts LLM-based integration scenario extraction.
type ScenarioExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
