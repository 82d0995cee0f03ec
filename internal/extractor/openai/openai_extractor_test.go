package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcase/internal/config"
	"flowcase/internal/domain"
	"flowcase/internal/extractor"
	openaiext "flowcase/internal/extractor/openai"
	"flowcase/internal/port"
)

func newTestExtractor(serverURL string) *openaiext.Extractor {
	cfg := &config.ExtractorConfig{
		Provider:    "openai",
		APIKey:      "test-openai-key",
		Model:       "gpt-4.1",
		BaseURL:     serverURL + "/v1",
		TimeoutSecs: 30,
	}
	return openaiext.NewExtractor(cfg)
}

func toolCallResponse(arguments string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role": "assistant",
					"tool_calls": []map[string]interface{}{
						{
							"id":   "call_1",
							"type": "function",
							"function": map[string]interface{}{
								"name":      "submit_integration_scenarios",
								"arguments": arguments,
							},
						},
					},
				},
				"finish_reason": "tool_calls",
			},
		},
		"usage": map[string]interface{}{"total_tokens": 321},
	}
}

func TestExtract_Success(t *testing.T) {
	args := `{"scenarios":[{
		"requirement_location":"Section 2",
		"integration_flow_summary":"Checkout spans cart and payment",
		"related_modules_functions_systems":["Cart","Payment"],
		"test_scenario_integration":"Complete a checkout",
		"flow_type":"Main Flow"
	}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "gpt-4.1", reqBody["model"])

		// Exactly one tool, and the tool choice forces it.
		tools := reqBody["tools"].([]interface{})
		require.Len(t, tools, 1)
		fn := tools[0].(map[string]interface{})["function"].(map[string]interface{})
		assert.Equal(t, extractor.SubmitFunctionName, fn["name"])

		choice := reqBody["tool_choice"].(map[string]interface{})
		assert.Equal(t, "function", choice["type"])
		assert.Equal(t, extractor.SubmitFunctionName,
			choice["function"].(map[string]interface{})["name"])

		// System instruction plus the wrapped document.
		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)
		system := messages[0].(map[string]interface{})
		assert.Equal(t, "system", system["role"])
		assert.Contains(t, system["content"], "TWO OR MORE modules")
		user := messages[1].(map[string]interface{})
		assert.Equal(t, "user", user["role"])
		assert.Contains(t, user["content"], "--- DOCUMENT START ---")
		assert.Contains(t, user["content"], "the document body")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toolCallResponse(args))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{DocumentText: "the document body"})

	require.NoError(t, err)
	require.Len(t, out.Scenarios, 1)
	assert.Equal(t, "Section 2", out.Scenarios[0].RequirementLocation)
	assert.Equal(t, []string{"Cart", "Payment"}, out.Scenarios[0].Modules)
	assert.Equal(t, "gpt-4.1", out.ModelUsed)
	assert.Equal(t, 321, out.TokensUsed)
}

func TestExtract_NoToolCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]interface{}{"role": "assistant", "content": "I cannot do that."},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{DocumentText: "doc"})

	assert.ErrorIs(t, err, domain.ErrNoStructuredResponse)
}

func TestExtract_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{DocumentText: "doc"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling openai API")
}

func TestExtract_MalformedArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toolCallResponse(`{"scenarios": not-json`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{DocumentText: "doc"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing tool call arguments")
}
