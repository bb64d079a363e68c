package limits

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source defines how plans are loaded into the limits service.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// inMemSource serves a fixed plan catalog from memory.
type inMemSource struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemSource returns an in-memory Source with a deep copy of the
// given plans. Pass DefaultPlans() for the built-in catalog.
func NewInMemSource(plans map[string]Plan) Source {
	plansCopy := make(map[string]Plan, len(plans))
	for id, plan := range plans {
		plansCopy[id] = clonePlan(plan)
	}
	return &inMemSource{plans: plansCopy}
}

func (s *inMemSource) Load(_ context.Context) (map[string]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plansCopy := make(map[string]Plan, len(s.plans))
	for id, plan := range s.plans {
		plansCopy[id] = clonePlan(plan)
	}
	return plansCopy, nil
}

// yamlSource loads the plan catalog from a YAML file, allowing limit
// changes without a rebuild. Expected shape:
//
//	free:
//	  name: Free
//	  public: true
//	  limits:
//	    ingredients: 50
//	    recipes: 5
//	    menu_items: 2
type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source that reads plans from the given file on
// every Load call.
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

type yamlPlan struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Public      bool             `yaml:"public"`
	Limits      map[string]int64 `yaml:"limits"`
}

func (s *yamlSource) Load(_ context.Context) (map[string]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Join(ErrPlanSourceFileNotFound, err)
		}
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var parsed map[string]yamlPlan
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan, len(parsed))
	for id, yp := range parsed {
		limits := make(map[Resource]int64, len(yp.Limits))
		for res, limit := range yp.Limits {
			if limit < 0 {
				return nil, errors.Join(ErrInvalidPlanConfig,
					fmt.Errorf("plan %s has negative limit for %s: %d", id, res, limit))
			}
			limits[Resource(res)] = limit
		}
		plans[id] = Plan{
			ID:          id,
			Name:        yp.Name,
			Description: yp.Description,
			Limits:      limits,
			Public:      yp.Public,
		}
	}
	return plans, nil
}
