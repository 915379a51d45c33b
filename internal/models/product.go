package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Product represents a single item on the restaurant menu.
type Product struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,max=36"`
	Name        string      `json:"name" validate:"required,min=2,max=100"`
	Description string      `json:"description" validate:"omitempty,max=500"`
	Price       float64     `json:"price" validate:"gte=0"`
	Category    string      `json:"category" validate:"omitempty,max=50"`
	Image       string      `json:"image" validate:"omitempty,url"`
	Ingredients StringSlice `json:"ingredients" gorm:"type:text"`
	Rating      float64     `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int         `json:"reviews" validate:"gte=0"`
	Popular     bool        `json:"popular"`
}

// StringSlice stores a list of strings as a JSON text column.
type StringSlice []string

// Value implements driver.Valuer so GORM can persist the slice as JSON.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string slice: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading the JSON column back.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for string slice column", value)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, s)
}
