package dto

import "github.com/octobees/leadsite/api/internal/entity"

// CreateLeadRequest is the public contact-form payload.
type CreateLeadRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Source      string `json:"source"`
	Message     string `json:"message"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
}

// StatusUpdateRequest carries the new status for a lead.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// ListFilter contains query parameters for the dashboard lead listing.
type ListFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// LeadPage is one page of leads plus exact pagination metadata.
type LeadPage struct {
	Items    []entity.Lead `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// StatusSummary reports lead counts per pipeline status. Statuses with no
// leads are reported as 0, never omitted.
type StatusSummary struct {
	Total     int `json:"total"`
	New       int `json:"New"`
	Contacted int `json:"Contacted"`
	Qualified int `json:"Qualified"`
	Won       int `json:"Won"`
	Lost      int `json:"Lost"`
}

// CampaignSummary reports lead counts per attribution channel.
type CampaignSummary struct {
	Google  int `json:"google"`
	Meta    int `json:"meta"`
	Organic int `json:"organic"`
	Other   int `json:"other"`
	Total   int `json:"total"`
}
