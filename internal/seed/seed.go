package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

//go:embed default.yaml
var defaultData []byte

// Data is the content of a seed file.
type Data struct {
	Categories []Category `yaml:"categories" json:"categories"`
	Questions  []Question `yaml:"questions" json:"questions"`
}

type Category struct {
	ID   int64  `yaml:"id" json:"id"`
	Type string `yaml:"type" json:"type"`
}

type Question struct {
	Question   string `yaml:"question" json:"question"`
	Answer     string `yaml:"answer" json:"answer"`
	Category   int64  `yaml:"category" json:"category"`
	Difficulty int    `yaml:"difficulty" json:"difficulty"`
}

// Target is a store that can take seeded categories and questions.
type Target interface {
	UpsertCategory(ctx context.Context, c trivia.Category) error
	CreateQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error)
	ListQuestions(ctx context.Context) ([]trivia.Question, error)
}

// Default returns the built-in sample data set.
func Default() (Data, error) {
	return parseYAML(defaultData)
}

// Load reads a seed file. Files ending in .json are parsed as JSON, anything
// else as YAML. Unknown fields are rejected.
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSON(raw)
	}
	return parseYAML(raw)
}

func parseJSON(raw []byte) (Data, error) {
	var data Data
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&data); err != nil {
		return Data{}, fmt.Errorf("parse json: %w", err)
	}
	return data, nil
}

func parseYAML(raw []byte) (Data, error) {
	var data Data
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&data); err != nil && err != io.EOF {
		return Data{}, fmt.Errorf("parse yaml: %w", err)
	}
	return data, nil
}

// Apply writes categories, then questions when the store holds none yet, so
// restarting against a persistent store does not duplicate questions.
func Apply(ctx context.Context, target Target, data Data) (int, error) {
	for _, c := range data.Categories {
		if err := target.UpsertCategory(ctx, trivia.Category{ID: c.ID, Type: c.Type}); err != nil {
			return 0, fmt.Errorf("seed category %d: %w", c.ID, err)
		}
	}

	existing, err := target.ListQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("list questions: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, q := range data.Questions {
		_, err := target.CreateQuestion(ctx, trivia.NewQuestion{
			Question:   q.Question,
			Answer:     q.Answer,
			Category:   q.Category,
			Difficulty: q.Difficulty,
		})
		if err != nil {
			return i, fmt.Errorf("seed question %d: %w", i, err)
		}
	}
	return len(data.Questions), nil
}
