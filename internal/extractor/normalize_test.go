package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcase/internal/domain"
	"flowcase/internal/extractor"
	"flowcase/internal/port"
)

func validRaw() port.RawScenario {
	return port.RawScenario{
		RequirementLocation: "Section 3.2 Checkout",
		FlowSummary:         "Order submission through payment capture",
		Modules:             []string{"Cart", "Payment Gateway", "Order Service"},
		TestScenario:        "Submit cart, verify payment captured and order created",
		FlowType:            "Main Flow",
	}
}

func TestNormalize_PreservesOrderAndFields(t *testing.T) {
	raw := []port.RawScenario{validRaw()}
	out := extractor.Normalize(raw)

	require.Len(t, out, 1)
	s := out[0]
	assert.Equal(t, 0, s.Position)
	assert.Equal(t, "Section 3.2 Checkout", s.RequirementLocation)
	assert.Equal(t, "Order submission through payment capture", s.FlowSummary)
	assert.Equal(t, domain.StringList{"Cart", "Payment Gateway", "Order Service"}, s.Modules)
	assert.Equal(t, domain.FlowTypeMain, s.FlowType)
}

func TestNormalize_MissingTextFieldsDefault(t *testing.T) {
	raw := []port.RawScenario{{
		Modules: []string{"Inventory", "Shipping"},
	}}
	out := extractor.Normalize(raw)

	require.Len(t, out, 1)
	s := out[0]
	assert.Equal(t, domain.NotSpecified, s.RequirementLocation)
	assert.Equal(t, domain.NotSpecified, s.FlowSummary)
	assert.Equal(t, domain.NotSpecified, s.TestScenario)
	assert.Equal(t, domain.FlowTypeNotSpecified, s.FlowType)
}

func TestNormalize_SingleModuleDiscarded(t *testing.T) {
	raw := []port.RawScenario{{
		RequirementLocation: "Section 1",
		Modules:             []string{"Billing"},
	}}
	assert.Empty(t, extractor.Normalize(raw))
}

func TestNormalize_WhitespaceOnlyModulesDoNotCount(t *testing.T) {
	raw := []port.RawScenario{{
		Modules: []string{"Billing", "   ", ""},
	}}
	assert.Empty(t, extractor.Normalize(raw))
}

func TestNormalize_ModulesTrimmed(t *testing.T) {
	raw := []port.RawScenario{{
		Modules: []string{"  Billing ", "Ledger", " ", ""},
	}}
	out := extractor.Normalize(raw)

	require.Len(t, out, 1)
	assert.Equal(t, domain.StringList{"Billing", "Ledger"}, out[0].Modules)
}

func TestNormalize_ThreeValidOneInvalid(t *testing.T) {
	raw := []port.RawScenario{
		validRaw(),
		{Modules: []string{"OnlyOne"}},
		validRaw(),
		validRaw(),
	}
	out := extractor.Normalize(raw)

	require.Len(t, out, 3)
	// Positions are contiguous in output order.
	assert.Equal(t, 0, out[0].Position)
	assert.Equal(t, 1, out[1].Position)
	assert.Equal(t, 2, out[2].Position)
}

func TestNormalize_EveryOutputHasTwoModules(t *testing.T) {
	raw := []port.RawScenario{
		validRaw(),
		{Modules: nil},
		{Modules: []string{}},
		{Modules: []string{"A"}},
		{Modules: []string{"A", "B"}},
	}
	for _, s := range extractor.Normalize(raw) {
		assert.GreaterOrEqual(t, len(s.Modules), 2)
	}
}

func TestJoinModules(t *testing.T) {
	assert.Equal(t, "Cart, Payment Gateway",
		extractor.JoinModules(domain.StringList{"Cart", "Payment Gateway"}))
}
