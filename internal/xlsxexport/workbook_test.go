package xlsxexport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcase/internal/domain"
	"flowcase/internal/xlsxexport"
)

func TestBuildWorkbook(t *testing.T) {
	scenarios := []domain.Scenario{
		{
			RequirementLocation: "Section 2",
			FlowSummary:         "Login propagates identity to the audit trail",
			Modules:             domain.StringList{"Auth", "Audit"},
			TestScenario:        "Log in, verify audit entry references the session",
			FlowType:            domain.FlowTypeMain,
		},
		{
			RequirementLocation: "Section 5",
			FlowSummary:         "Payment failure rolls back the reservation",
			Modules:             domain.StringList{"Payment", "Reservation"},
			TestScenario:        "Decline the card, verify reservation released",
			FlowType:            domain.FlowTypeException,
		},
	}

	f, err := xlsxexport.BuildWorkbook(scenarios)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{xlsxexport.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(xlsxexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Requirement Location (as per document)", rows[0][0])
	assert.Equal(t, "Section 2", rows[1][0])
	assert.Equal(t, "Auth, Audit", rows[1][2])
	assert.Equal(t, "Exception", rows[2][4])
}

func TestBuildWorkbook_Empty(t *testing.T) {
	f, err := xlsxexport.BuildWorkbook(nil)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}

func TestBuildFilename(t *testing.T) {
	name := xlsxexport.BuildFilename("spec.txt")
	assert.Contains(t, name, "spec_txt_")
	assert.Contains(t, name, ".xlsx")
}
