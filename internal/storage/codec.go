package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/weekendly/internal/models"
)

// EncodeActivity serializes the activity snapshot stored alongside a
// scheduled record.
func EncodeActivity(a models.Activity) (string, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to encode activity %s: %w", a.ID, err)
	}
	return string(data), nil
}

func DecodeActivity(raw []byte) (models.Activity, error) {
	var a models.Activity
	if err := json.Unmarshal(raw, &a); err != nil {
		return models.Activity{}, fmt.Errorf("failed to decode activity: %w", err)
	}
	return a, nil
}
