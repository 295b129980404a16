package model

import "time"

// Count pairs a label with a number of leads.
type Count struct {
	Label string `json:"label" db:"label"`
	Total int    `json:"total" db:"total"`
}

// BrokerPerformance summarizes a broker's assigned leads.
type BrokerPerformance struct {
	BrokerID    int64  `json:"broker_id" db:"broker_id"`
	Name        string `json:"name" db:"name"`
	Leads       int    `json:"leads" db:"leads"`
	Conversions int    `json:"conversions" db:"conversions"`
}

// DashboardMetrics backs the dashboard page for one period.
// ChangePercent compares NewLeads with the equally long period before it.
type DashboardMetrics struct {
	Period         string              `json:"period"`
	From           time.Time           `json:"from"`
	To             time.Time           `json:"to"`
	NewLeads       int                 `json:"new_leads"`
	PreviousLeads  int                 `json:"previous_leads"`
	ChangePercent  float64             `json:"change_percent"`
	Conversions    int                 `json:"conversions"`
	ConversionRate float64             `json:"conversion_rate"`
	Pipeline       []Count             `json:"pipeline"`
	ByTemperature  []Count             `json:"by_temperature"`
	TopBrokers     []BrokerPerformance `json:"top_brokers"`
	RecentLeads    []Lead              `json:"recent_leads"`
}

// Report backs the reports page and covers all leads ever recorded.
type Report struct {
	TotalLeads     int     `json:"total_leads"`
	Conversions    int     `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
	ByStatus       []Count `json:"by_status"`
	BySource       []Count `json:"by_source"`
	ByCity         []Count `json:"by_city"`
	ByPlanType     []Count `json:"by_plan_type"`
}
