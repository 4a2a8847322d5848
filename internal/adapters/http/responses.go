package httpadapter

import "domaininfo/internal/domain"

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type recordResponse struct {
	Domain      string `json:"domain"`
	Status      string `json:"status"`
	CreatedDate string `json:"created_date"`
	ExpiryDate  string `json:"expiry_date"`
	AgeYears    string `json:"domain_age_years"`
	AgeDays     int    `json:"domain_age_days"`
	Registrar   string `json:"registrar"`
	RiskScore   int    `json:"risk_score"`
	Source      string `json:"source"`
}

type unavailableResponse struct {
	Domain  string `json:"domain"`
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toResponse(rec domain.Record) any {
	if rec.Status != domain.StatusSuccess {
		return unavailableResponse{
			Domain:  rec.Domain.String(),
			Status:  string(rec.Status),
			Error:   rec.Error,
			Message: rec.Message,
		}
	}
	return recordResponse{
		Domain:      rec.Domain.String(),
		Status:      string(rec.Status),
		CreatedDate: rec.CreatedDate,
		ExpiryDate:  rec.ExpiryDate,
		AgeYears:    rec.AgeYears,
		AgeDays:     rec.AgeDays,
		Registrar:   rec.Registrar,
		RiskScore:   rec.RiskScore,
		Source:      rec.Source,
	}
}
