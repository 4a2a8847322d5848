package domain

// Core lookup models. The HTTP adapter owns the wire shapes; keep these
// decoupled from JSON so sources and the audit log can share them.

// Name is a normalized domain: lowercase, no scheme, no leading "www.",
// no path. See Normalize.
type Name string

func (n Name) String() string { return string(n) }

// Status of a resolved record.
type Status string

const (
	StatusSuccess     Status = "success"
	StatusUnavailable Status = "unavailable"
)

// Unknown is rendered for any field a source could not supply.
const Unknown = "Unknown"

// RecordSource is the constant source label clients see on success.
const RecordSource = "whois-data"

const (
	unavailableError   = "WHOIS data temporarily unavailable for this domain"
	unavailableMessage = "Try searching on https://whatsmydns.net/domain-age for real data"
)

// RawFields are the loosely typed values a source extracted. An empty
// string means the field was absent.
type RawFields struct {
	CreatedDate string
	ExpiryDate  string
	Registrar   string
}

// Record is the standardized lookup result.
type Record struct {
	Domain      Name
	Status      Status
	CreatedDate string
	ExpiryDate  string
	AgeYears    string
	AgeDays     int
	Registrar   string
	RiskScore   int
	Source      string

	// Set only when Status is StatusUnavailable.
	Error   string
	Message string

	// Origin names the source that produced the record. Not part of the wire format.
	Origin string
}

// Unavailable is the terminal record returned once every source has failed.
func Unavailable(name Name) Record {
	return Record{
		Domain:  name,
		Status:  StatusUnavailable,
		Error:   unavailableError,
		Message: unavailableMessage,
	}
}
