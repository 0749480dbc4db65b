package reference

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Example struct {
	ID        string `json:"id"`
	Context   string `json:"source_context"`
	Caption   string `json:"caption"`
	ImagePath string `json:"image_path,omitempty"`
	Category  string `json:"category,omitempty"`
}

type index struct {
	Examples []Example `json:"examples"`
}

// Load reads the example pool from dir/index.json. A missing index (or no
// directory at all) is not an error: the pipeline degrades to zero-shot
// planning with an empty pool. Relative image paths are resolved against dir.
func Load(dir string) ([]Example, error) {
	if dir == "" {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read reference index: %w", err)
	}

	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse reference index: %w", err)
	}

	for i := range idx.Examples {
		p := idx.Examples[i].ImagePath
		if p != "" && !filepath.IsAbs(p) {
			idx.Examples[i].ImagePath = filepath.Join(dir, p)
		}
	}

	return idx.Examples, nil
}
