// Package classifier определяет серьезность ДТП по одному показанию
// акселерометра и гироскопа. Решающая граница - ансамбль деревьев решений,
// обученный офлайн на выборке "обычная езда / столкновение" и сохраненный в JSON.
package classifier

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shenikar/accident_alert_system/internal/models"
)

// FeatureCount - число признаков: три оси ускорения и три оси угловой скорости
const FeatureCount = 6

const (
	labelNormal    = 0
	labelCollision = 1
)

//go:embed default_model.json
var defaultModel []byte

// Node - узел дерева. Если Leaf задан, узел листовой.
// Иначе при features[Feature] <= Threshold идем в Left, иначе в Right.
type Node struct {
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Leaf      *int    `json:"leaf,omitempty"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Model - загруженная модель. После загрузки не изменяется и безопасна
// для одновременного использования из разных горутин.
type Model struct {
	Version  string   `json:"version"`
	Features []string `json:"features"`
	MinVotes int      `json:"min_votes"`
	Trees    []Tree   `json:"trees"`
}

// Default загружает модель, встроенную в бинарник
func Default() (*Model, error) {
	return Parse(defaultModel)
}

// Load загружает модель из файла. Пустой путь означает встроенную модель.
func Load(path string) (*Model, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	return Parse(data)
}

// Parse разбирает и проверяет сериализованную модель
func Parse(data []byte) (*Model, error) {
	m := &Model{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid model %q: %w", m.Version, err)
	}
	return m, nil
}

func (m *Model) validate() error {
	if len(m.Trees) == 0 {
		return errors.New("model has no trees")
	}
	if m.MinVotes < 1 || m.MinVotes > len(m.Trees) {
		return fmt.Errorf("min_votes must be within [1, %d], got %d", len(m.Trees), m.MinVotes)
	}
	for ti, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Leaf != nil {
				if *node.Leaf != labelNormal && *node.Leaf != labelCollision {
					return fmt.Errorf("tree %d node %d: unknown label %d", ti, ni, *node.Leaf)
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= FeatureCount {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, node.Feature)
			}
			// дети всегда правее родителя, поэтому циклов быть не может
			for _, child := range []int{node.Left, node.Right} {
				if child <= ni || child >= len(tree.Nodes) {
					return fmt.Errorf("tree %d node %d: bad child index %d", ti, ni, child)
				}
			}
		}
	}
	return nil
}

func (t Tree) predict(features [FeatureCount]float64) int {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Leaf != nil {
			return *node.Leaf
		}
		if features[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

// Votes возвращает число деревьев, проголосовавших за столкновение
func (m *Model) Votes(sample models.SensorSample) int {
	features := sample.Features()
	votes := 0
	for _, tree := range m.Trees {
		if tree.predict(features) == labelCollision {
			votes++
		}
	}
	return votes
}

// Classify возвращает high для столкновения и low для обычной езды.
// medium этим путем никогда не выдается.
func (m *Model) Classify(sample models.SensorSample) models.Severity {
	if m.Votes(sample) >= m.MinVotes {
		return models.SeverityHigh
	}
	return models.SeverityLow
}
