package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Image is a stored object reference: the object id under the upload root
// plus the public URL it is served from.
type Image struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// ImageList is stored as a JSON column.
type ImageList []Image

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ImageList) Scan(value any) error {
	return scanJSON(value, l)
}

// StringList is stored as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value any) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported column type for JSON scan")
	}
}
