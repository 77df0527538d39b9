package schema

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Sex string

const (
	SexMale        Sex = "Male"
	SexFemale      Sex = "Female"
	SexOther       Sex = "Other"
	SexUndisclosed Sex = "Prefer not to say"
)

// HealthHistory is a list of free-text health-history tags kept as a
// jsonb column.
type HealthHistory []string

func (h HealthHistory) Value() (driver.Value, error) {
	return json.Marshal(h)
}

func (h *HealthHistory) Scan(src interface{}) error {
	source, ok := src.([]byte)
	if !ok {
		return errors.New("Type assertion .([]byte) failed.")
	}
	return json.Unmarshal(source, h)
}

// UserProfile is a registered user of the system. The id is opaque and
// assigned by the identity provider; records in mongo reference it as
// user_id.
type UserProfile struct {
	ID            string        `json:"id" gorm:"primary_key"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Image         string        `json:"image,omitempty"`
	Sex           Sex           `json:"sex,omitempty"`
	HealthHistory HealthHistory `json:"health_history" gorm:"type:jsonb;not null;default '[]'"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
