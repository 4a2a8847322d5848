package domain

import (
	"fmt"
	"time"
)

const (
	daysPerYear   = 365.25
	secondsPerDay = 24 * 60 * 60
)

// Assemble builds a success record from the fields a source extracted.
// It fails only on internal inconsistencies, in which case the caller must
// treat the source as failed rather than return a partial record.
func Assemble(name Name, fields RawFields, now time.Time) (Record, error) {
	if name == "" {
		return Record{}, NewSourceError(ErrAssembly, "assembler", "empty domain name", nil)
	}

	ageDays := 0
	ageYears := Unknown
	if created, ok := ParseDate(fields.CreatedDate); ok {
		ageDays = daysBetween(created, now)
		if ageDays > 0 {
			ageYears = fmt.Sprintf("%.1f", float64(ageDays)/daysPerYear)
		}
	}

	score := RiskScore(ageDays)
	if ageDays < 0 || score < 0 || score > 100 {
		return Record{}, NewSourceError(ErrAssembly, "assembler",
			fmt.Sprintf("invariant violated: age_days=%d risk_score=%d", ageDays, score), nil)
	}

	return Record{
		Domain:      name,
		Status:      StatusSuccess,
		CreatedDate: orUnknown(fields.CreatedDate),
		ExpiryDate:  orUnknown(fields.ExpiryDate),
		AgeYears:    ageYears,
		AgeDays:     ageDays,
		Registrar:   orUnknown(fields.Registrar),
		RiskScore:   score,
		Source:      RecordSource,
	}, nil
}

// daysBetween counts whole calendar days from created to now. Creation
// dates in the future count as zero.
func daysBetween(created, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	days := int((today.Unix() - start.Unix()) / secondsPerDay)
	if days < 0 {
		return 0
	}
	return days
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
