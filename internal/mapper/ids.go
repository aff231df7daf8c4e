package mapper

import (
	"fmt"
)

// ParseIDs extracts the article ids from a list-endpoint payload, a JSON array
// of objects carrying at least "id".
func ParseIDs(list []byte) ([]string, error) {
	var items []any
	if err := decode(list, &items); err != nil {
		return nil, fmt.Errorf("mapper: decode article list: %w", err)
	}
	ids := make([]string, 0, len(items))
	for i, raw := range items {
		path := fmt.Sprintf("list[%d]", i)
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, &InvalidFieldError{Field: path, Want: "an object"}
		}
		id, err := idField(obj, "id", path+".id")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
