package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-loan-calc/domain"
)

func TestBuiltinPlanTable(t *testing.T) {
	r := builtinPlans(t)

	plans := r.List()
	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID)
		assert.NoError(t, p.Validate(), p.ID)
	}
	assert.Equal(t, []string{"plan1", "plan2", "plan4", "plan5", "postgraduate"}, ids)

	plan5, err := r.Get("plan5")
	require.NoError(t, err)
	assert.Equal(t, 40, plan5.WriteOffYears)
	assert.Equal(t, 25000.0, plan5.ThresholdAnnual)
}

func TestPlanRegistry_AliasAndCase(t *testing.T) {
	r := builtinPlans(t)

	viaAlias, err := r.Get("plan3")
	require.NoError(t, err)
	assert.Equal(t, "postgraduate", viaAlias.ID)
	assert.Equal(t, 0.06, viaAlias.RepaymentRate)

	upper, err := r.Get("  PLAN2 ")
	require.NoError(t, err)
	assert.Equal(t, "plan2", upper.ID)
}

func TestPlanRegistry_UnknownPlan(t *testing.T) {
	_, err := builtinPlans(t).Get("plan9")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestNewPlanRegistry_RejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "invalid repayment rate",
			yaml: `
plans:
  - id: broken
    threshold_annual: 20000
    repayment_rate: 0
    write_off_years: 30
    assumed_annual_interest_rate: 0.05
`,
			want: domain.ErrInvalidPlanParameter,
		},
		{
			name: "negative write-off",
			yaml: `
plans:
  - id: broken
    threshold_annual: 20000
    repayment_rate: 0.09
    write_off_years: -1
`,
			want: domain.ErrInvalidPlanParameter,
		},
		{name: "empty", yaml: "plans: []"},
		{name: "not yaml", yaml: "plans: [::"},
		{
			name: "duplicate",
			yaml: `
plans:
  - {id: a, threshold_annual: 1, repayment_rate: 0.09, write_off_years: 1}
  - {id: A, threshold_annual: 1, repayment_rate: 0.09, write_off_years: 1}
`,
		},
		{
			name: "alias shadows plan",
			yaml: `
plans:
  - {id: a, threshold_annual: 1, repayment_rate: 0.09, write_off_years: 1, aliases: [b]}
  - {id: b, threshold_annual: 1, repayment_rate: 0.09, write_off_years: 1}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlanRegistry([]byte(tt.yaml))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLoadPlanRegistry_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	doc := `
plans:
  - id: plan2
    name: Plan 2 (pessimistic)
    threshold_annual: 27295
    repayment_rate: 0.09
    write_off_years: 30
    assumed_annual_interest_rate: 0.075
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	r, err := LoadPlanRegistry(path)
	require.NoError(t, err)

	p, err := r.Get("plan2")
	require.NoError(t, err)
	assert.Equal(t, 0.075, p.AssumedAnnualInterestRate)
	assert.Len(t, r.List(), 1)

	_, err = LoadPlanRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
