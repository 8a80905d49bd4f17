// Package dataset loads searchable records from a YAML or JSON file and
// adapts them for the fuzzy engine.
package dataset

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/aimai/internal/fuzzy"
	"github.com/hyperjump/aimai/internal/models"
)

// Load reads the record file at path. The file holds a list of flat
// mappings; scalar values are coerced to strings and records without an
// "id" field get a generated one. YAML is a superset of JSON, so .json
// datasets parse with the same code path.
func Load(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	records := make([]models.Record, 0, len(raw))
	for i, entry := range raw {
		rec := make(models.Record, len(entry)+1)
		for key, value := range entry {
			s, err := coerce(value)
			if err != nil {
				return nil, fmt.Errorf("record %d, field %q: %w", i, key, err)
			}
			rec[key] = s
		}
		if rec["id"] == "" {
			rec["id"] = uuid.NewString()
		}
		records = append(records, rec)
	}
	return records, nil
}

// Keys builds engine field selectors for the named record fields. A record
// lacking a field contributes an empty string for it.
func Keys(names []string) []fuzzy.Key[models.Record] {
	keys := make([]fuzzy.Key[models.Record], 0, len(names))
	for _, name := range names {
		name := name
		keys = append(keys, fuzzy.Key[models.Record]{
			Name: name,
			Text: func(r models.Record) string { return r[name] },
		})
	}
	return keys
}

// coerce converts a scalar YAML value to its string form.
func coerce(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}
