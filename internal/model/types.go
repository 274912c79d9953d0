package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date without time or zone. It serializes as
// "YYYY-MM-DD" and maps to a SQL DATE column.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v.UTC().Truncate(24 * time.Hour)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// DateTime is a timestamp accepted as zone-less ISO-8601 text
// ("2006-01-02T15:04:05") or RFC 3339. It serializes without a zone.
type DateTime struct {
	time.Time
}

func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range []string{dateTimeLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q, want ISO-8601", s)
}

func (dt DateTime) String() string {
	return dt.Format(dateTimeLayout)
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.String())
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

func (dt DateTime) Value() (driver.Value, error) {
	return dt.Time, nil
}

func (dt *DateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		dt.Time = v
		return nil
	case []byte:
		parsed, err := ParseDateTime(string(v))
		if err != nil {
			return err
		}
		*dt = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateTime", src)
	}
}

// Gender is the enumerated patient gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s), nil
	}
	return "", fmt.Errorf("invalid gender %q, want one of %s", s,
		strings.Join([]string{string(GenderMale), string(GenderFemale), string(GenderOther)}, ", "))
}

func (g Gender) String() string {
	return string(g)
}

func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(g))
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("gender must be a string: %w", err)
	}
	parsed, err := ParseGender(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func (g Gender) Value() (driver.Value, error) {
	return string(g), nil
}

func (g *Gender) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*g = Gender(v)
		return nil
	case []byte:
		*g = Gender(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Gender", src)
	}
}
