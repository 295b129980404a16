package model

import "time"

// Temperature values classify how interested a lead is.
const (
	TemperatureCold = "frio"
	TemperatureWarm = "morno"
	TemperatureHot  = "quente"
)

// Pipeline statuses. Status is free text in storage; these are the values the
// dashboard pipeline knows about.
const (
	StatusNew         = "novo"
	StatusContacted   = "contatado"
	StatusInterested  = "interessado"
	StatusProposal    = "proposta"
	StatusNegotiation = "negociacao"
	StatusClosed      = "fechado"
	StatusLost        = "perdido"
)

// SourceImport marks leads that arrived through a CSV import.
const SourceImport = "importacao"

// PipelineStatuses lists statuses in pipeline order.
var PipelineStatuses = []string{
	StatusNew,
	StatusContacted,
	StatusInterested,
	StatusProposal,
	StatusNegotiation,
	StatusClosed,
	StatusLost,
}

// Temperatures lists temperature classifications from coldest to hottest.
var Temperatures = []string{TemperatureCold, TemperatureWarm, TemperatureHot}

// Lead is a sales prospect. Optional columns are pointers so that absent
// values round-trip as JSON null.
type Lead struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	City        *string   `json:"city"`
	PlanType    *string   `json:"plan_type"`
	BrokerID    *int64    `json:"broker_id"`
	BrokerName  *string   `json:"broker_name,omitempty"`
	Source      *string   `json:"source"`
	Temperature *string   `json:"temperature"`
	Status      *string   `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeadInput is the writable part of a Lead, used for both create and update.
type LeadInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	City        *string `json:"city"`
	PlanType    *string `json:"plan_type"`
	BrokerID    *int64  `json:"broker_id"`
	Source      *string `json:"source"`
	Temperature *string `json:"temperature"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

// MissingRequired returns the names of required fields that are blank.
func (in LeadInput) MissingRequired() []string {
	return missing(map[string]string{"name": in.Name, "email": in.Email, "phone": in.Phone})
}

// ImportedLead is a candidate lead produced by the CSV import normalizer.
type ImportedLead struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	City     *string `json:"city"`
	PlanType *string `json:"plan_type"`
}

// Input converts an imported row into a LeadInput tagged with the import source
// and the initial pipeline status.
func (l ImportedLead) Input() LeadInput {
	src, st := SourceImport, StatusNew
	return LeadInput{
		Name:     l.Name,
		Email:    l.Email,
		Phone:    l.Phone,
		City:     l.City,
		PlanType: l.PlanType,
		Source:   &src,
		Status:   &st,
	}
}
