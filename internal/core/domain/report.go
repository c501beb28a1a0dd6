package domain

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// EmployeeNamePlaceholder is shown when neither the live employee record nor
// the stored snapshot yields a name.
const EmployeeNamePlaceholder = "Sin nombre"

const isoDateLayout = "2006-01-02"

// CanonicalDay converts a YYYY-MM-DD string to the canonical stored instant
// for that calendar day: 12:00:00 UTC. Anchoring at midday keeps the date
// stable when rendered in any timezone between UTC-12 and UTC+12, which
// midnight-based storage does not.
func CanonicalDay(isoDate string) (time.Time, error) {
	d, err := time.ParseInLocation(isoDateLayout, isoDate, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d.Add(12 * time.Hour), nil
}

// DayStart returns 00:00:00 UTC of the calendar day in isoDate, for use as an
// inclusive lower range bound.
func DayStart(isoDate string) (time.Time, error) {
	d, err := time.ParseInLocation(isoDateLayout, isoDate, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// DayEnd returns 00:00:00 UTC of the day after isoDate, for use as an
// exclusive upper range bound covering the whole calendar day.
func DayEnd(isoDate string) (time.Time, error) {
	d, err := time.ParseInLocation(isoDateLayout, isoDate, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d.AddDate(0, 0, 1), nil
}

// Report is one sales entry for one employee on one calendar day, attributed
// to the leader who recorded it. At most one report exists per
// (EmployeeID, Date, LeaderID); a second submission for the same key
// overwrites the first. EmployeeName and LeaderName are display snapshots
// refreshed on every write; the stable keys are the ids.
type Report struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Date         time.Time `json:"date"`
	SaleCount    int       `json:"sale_count"`
	SaleAmount   float64   `json:"sale_amount"`
	Description  string    `json:"description"`
	Comments     string    `json:"comments"`
	LeaderID     string    `json:"leader_id"`
	LeaderName   string    `json:"leader_name"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
