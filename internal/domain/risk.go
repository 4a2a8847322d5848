package domain

// RiskScore maps the registration age in days to a 0-100 risk score. New
// domains score high; unknown or long-lived domains get the floor of 10.
func RiskScore(ageDays int) int {
	switch {
	case ageDays <= 0:
		return 10
	case ageDays < 30:
		return 80
	case ageDays < 90:
		return 75
	case ageDays < 365:
		return 50
	case ageDays < 1825:
		return 25
	default:
		return 10
	}
}
