package extractor

import "flowcase/internal/domain"

// SubmitFunctionName is the name of the tool the model must call with its
// extracted scenarios.
const SubmitFunctionName = "submit_integration_scenarios"

// SystemPrompt returns the fixed extraction instruction. The rules match what
// the tool schema asks for; the ≥2-module constraint is additionally enforced
// locally after the response arrives.
func SystemPrompt() string {
	return `You are a senior test analyst specializing in INTEGRATION scenario extraction with a big-picture, end-to-end perspective.
Goal: From the provided document, extract ONLY integration flows that span TWO OR MORE modules/functions/systems, emphasizing high-level business journeys and cross-system interactions.

BIGGER-PICTURE RULES:
1) Prioritize end-to-end outcomes and system-to-system interactions. Collapse granular UI/internal steps into higher-level actions.
2) Do NOT invent or assume anything not in the document. If something is missing or ambiguous, use '` + domain.NotSpecified + `'.
3) Include main (happy) flows, and only alternates/exceptions that materially change cross-system interactions, data contracts, or outcomes.
4) Skip single-module/unit-level items and minor step variations that do not affect integrations.
5) Each scenario must be clear for stakeholders and highlight participating systems and the core integration touchpoints; when mentioned in the source, note APIs/events/queues/identity propagation/data mapping; otherwise use '` + domain.NotSpecified + `'.
6) 'Requirement Location' should clearly help the reader find the source: section/heading names or a short quoted phrase if no headings.
7) Output MUST be a single function call to ` + SubmitFunctionName + `.
`
}

// UserPrompt wraps the document text with the extraction request.
func UserPrompt(docText string) string {
	return `Extract integration test scenarios based ONLY on the document below.
Focus on the bigger picture: end-to-end flows with 2+ modules/functions/systems and core cross-system interactions. Merge micro-steps; keep a minimal, comprehensive set of scenarios. No inventions—if unknown, write '` + domain.NotSpecified + `'.
Return as an array of objects via the function call.

--- DOCUMENT START ---
` + docText + `
--- DOCUMENT END ---
`
}

// ToolSchema is the JSON schema of the submit function's parameters: an array
// of scenario objects with five required fields, flow_type enum-constrained.
const ToolSchema = `{
  "type": "object",
  "properties": {
    "scenarios": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "requirement_location": {
            "type": "string",
            "description": "Exact chapter/section/heading, or short quoted snippet that clearly locates the requirement in the document."
          },
          "integration_flow_summary": {
            "type": "string",
            "description": "Brief summary of the multi-module integration/business flow."
          },
          "related_modules_functions_systems": {
            "type": "array",
            "items": {"type": "string"},
            "description": "List of all modules/functions/systems participating in the flow. Must contain at least two entries."
          },
          "test_scenario_integration": {
            "type": "string",
            "description": "Concise integration scenario demonstrating cross-module coordination."
          },
          "flow_type": {
            "type": "string",
            "enum": ["Main Flow", "Alternate", "Exception", "Variant", "Not specified in document"],
            "description": "Classify as Main Flow, Alternate, Exception, Variant, or Not specified in document."
          }
        },
        "required": [
          "requirement_location",
          "integration_flow_summary",
          "related_modules_functions_systems",
          "test_scenario_integration",
          "flow_type"
        ]
      }
    }
  },
  "required": ["scenarios"]
}`
