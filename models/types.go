// File: /models/types.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PaymentSnapshot is the payment detail recorded on a booking once its
// intent is confirmed, stored as a JSON column.
type PaymentSnapshot struct {
	IntentID    string    `json:"intent_id"`
	Amount      float64   `json:"amount"`
	Demo        bool      `json:"demo"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Value implements driver.Valuer interface for database storage
func (ps PaymentSnapshot) Value() (driver.Value, error) {
	return json.Marshal(ps)
}

// Scan implements sql.Scanner interface for database retrieval
func (ps *PaymentSnapshot) Scan(value interface{}) error {
	if value == nil {
		*ps = PaymentSnapshot{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ps)
	case string:
		return json.Unmarshal([]byte(v), ps)
	default:
		return fmt.Errorf("cannot scan %T into PaymentSnapshot", value)
	}
}

// GormDataType returns the data type for GORM
func (PaymentSnapshot) GormDataType() string {
	return "json"
}
