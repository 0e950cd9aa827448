// Package fixtures holds the static test-data corpus plus generators
// for payloads that must differ between runs.
package fixtures

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hasmiknersesyan/DummyJSON/internal/model"
)

//go:embed fixtures.yaml
var corpus []byte

type Data struct {
	KnownIDs   []int           `yaml:"known_ids"`
	MissingID  int             `yaml:"missing_id"`
	Categories []string        `yaml:"categories"`
	Search     SearchTerms     `yaml:"search"`
	Pagination []Window        `yaml:"pagination"`
	PatchBody  map[string]any  `yaml:"patch_body"`
	Seed       []model.Product `yaml:"seed"`
}

type SearchTerms struct {
	Matching   []string `yaml:"matching"`
	Unmatching string   `yaml:"unmatching"`
	Special    string   `yaml:"special"`
	Empty      string   `yaml:"empty"`
}

// Window is a limit/skip pagination request pair.
type Window struct {
	Limit int `yaml:"limit"`
	Skip  int `yaml:"skip"`
}

var (
	once    sync.Once
	data    Data
	loadErr error
)

// Load decodes the embedded corpus once; subsequent calls return the
// same immutable value.
func Load() (*Data, error) {
	once.Do(func() {
		dec := yaml.NewDecoder(bytes.NewReader(corpus))
		dec.KnownFields(true) // fail on unknown fields
		loadErr = dec.Decode(&data)
	})
	if loadErr != nil {
		return nil, fmt.Errorf("decode fixtures: %w", loadErr)
	}
	return &data, nil
}

func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// NewProductPayload returns a create payload with a unique title so
// repeated runs never collide on the remote side.
func NewProductPayload() map[string]any {
	return map[string]any{
		"title":              "Test Widget " + uuid.NewString()[:8],
		"description":        "A disposable product used to exercise simulated writes",
		"price":              49.99,
		"discountPercentage": 5.5,
		"rating":             4.2,
		"stock":              12,
		"brand":              "Acme",
		"category":           "smartphones",
		"thumbnail":          "https://cdn.example.com/widget/thumbnail.jpg",
		"images": []string{
			"https://cdn.example.com/widget/1.jpg",
		},
	}
}

// LongQuery returns a search term well past typical length (250 chars).
func LongQuery() string {
	return strings.Repeat("abcdefghij", 25)
}
