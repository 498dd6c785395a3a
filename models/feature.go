package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Feature is one entry in an ordered tagged-value list (lifestyle
// features, amenities, commute times). Lists are stored as JSON columns
// defaulting to [] and validated at the service boundary before any
// write reaches the store.
type Feature struct {
	Tag   string `json:"tag" validate:"required"`
	Value string `json:"value,omitempty"`
}

// EmptyFeatureList is the documented default for every feature column.
var EmptyFeatureList = datatypes.JSON([]byte("[]"))

func FeaturesToJSON(features []Feature) (datatypes.JSON, error) {
	if features == nil {
		return EmptyFeatureList, nil
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func ParseFeatures(col datatypes.JSON) ([]Feature, error) {
	if len(col) == 0 {
		return []Feature{}, nil
	}
	var features []Feature
	if err := json.Unmarshal(col, &features); err != nil {
		return nil, fmt.Errorf("malformed feature list: %w", err)
	}
	if features == nil {
		features = []Feature{}
	}
	return features, nil
}

// ValidateFeatureList rejects entries without a tag. Order is preserved
// as given by the caller.
func ValidateFeatureList(features []Feature) error {
	for i, f := range features {
		if f.Tag == "" {
			return fmt.Errorf("feature list entry %d is missing a tag", i)
		}
	}
	return nil
}

func StringsToJSON(values []string) (datatypes.JSON, error) {
	if values == nil {
		return EmptyFeatureList, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func ParseStrings(col datatypes.JSON) ([]string, error) {
	if len(col) == 0 {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal(col, &values); err != nil {
		return nil, fmt.Errorf("malformed string list: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
