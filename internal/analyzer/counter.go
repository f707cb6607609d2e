package analyzer

import (
	"fmt"
	"math/rand"
)

// StageRange bounds the head count reported for one stage: [Min, Max)
type StageRange struct {
	Name string
	Min  int
	Max  int
}

// DefaultStages returns the three monitored stages
func DefaultStages() []StageRange {
	return []StageRange{
		{Name: "Stage A", Min: 300, Max: 500},
		{Name: "Stage B", Min: 400, Max: 600},
		{Name: "Stage C", Min: 200, Max: 400},
	}
}

// RandomCrowdCounter is a placeholder that samples each stage's count
// uniformly from its range without looking at the density field.
type RandomCrowdCounter struct {
	stages []StageRange
}

// NewRandomCrowdCounter creates a placeholder counter over DefaultStages
func NewRandomCrowdCounter() CrowdCounter {
	return &RandomCrowdCounter{stages: DefaultStages()}
}

// NewRandomCrowdCounterWithStages creates a placeholder counter over custom stages
func NewRandomCrowdCounterWithStages(stages []StageRange) CrowdCounter {
	return &RandomCrowdCounter{stages: stages}
}

// Count samples one count per stage
func (c *RandomCrowdCounter) Count(field *DensityField) (map[string]int, error) {
	counts := make(map[string]int, len(c.stages))
	for _, stage := range c.stages {
		if stage.Max <= stage.Min {
			return nil, fmt.Errorf("stage %q has empty range [%d, %d)", stage.Name, stage.Min, stage.Max)
		}
		counts[stage.Name] = stage.Min + rand.Intn(stage.Max-stage.Min)
	}
	return counts, nil
}
