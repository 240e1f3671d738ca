package service

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"student-loan-calc/domain"
)

//go:embed plans.yaml
var defaultPlansYAML []byte

var ErrUnknownPlan = errors.New("unknown loan plan")

type planEntry struct {
	domain.LoanPlan `yaml:",inline"`
	Aliases         []string `yaml:"aliases"`
}

type plansFile struct {
	Plans []planEntry `yaml:"plans"`
}

// PlanRegistry is the single source of plan parameters. It is read-only after
// construction and safe for concurrent use.
type PlanRegistry struct {
	plans   map[string]domain.LoanPlan
	aliases map[string]string
}

// NewPlanRegistry parses a YAML plan document and validates every plan.
func NewPlanRegistry(data []byte) (*PlanRegistry, error) {
	var file plansFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse plans: %w", err)
	}
	if len(file.Plans) == 0 {
		return nil, errors.New("parse plans: no plans defined")
	}

	r := &PlanRegistry{
		plans:   make(map[string]domain.LoanPlan, len(file.Plans)),
		aliases: make(map[string]string),
	}
	for _, entry := range file.Plans {
		id := normalizePlanID(entry.ID)
		if id == "" {
			return nil, errors.New("parse plans: plan without id")
		}
		if _, dup := r.plans[id]; dup {
			return nil, fmt.Errorf("parse plans: duplicate plan %q", id)
		}
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("plan %q: %w", id, err)
		}
		plan := entry.LoanPlan
		plan.ID = id
		r.plans[id] = plan
		for _, alias := range entry.Aliases {
			r.aliases[normalizePlanID(alias)] = id
		}
	}
	for alias, id := range r.aliases {
		if _, clash := r.plans[alias]; clash {
			return nil, fmt.Errorf("parse plans: alias %q shadows plan %q", alias, id)
		}
	}
	return r, nil
}

// LoadPlanRegistry reads plans from path, or the built-in table when path is empty.
func LoadPlanRegistry(path string) (*PlanRegistry, error) {
	if path == "" {
		return NewPlanRegistry(defaultPlansYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plans file: %w", err)
	}
	return NewPlanRegistry(data)
}

func (r *PlanRegistry) Get(id string) (domain.LoanPlan, error) {
	key := normalizePlanID(id)
	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	plan, ok := r.plans[key]
	if !ok {
		return domain.LoanPlan{}, fmt.Errorf("%w: %q", ErrUnknownPlan, id)
	}
	return plan, nil
}

// List returns all plans ordered by id.
func (r *PlanRegistry) List() []domain.LoanPlan {
	out := make([]domain.LoanPlan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func normalizePlanID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
