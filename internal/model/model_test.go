package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadInput_MissingRequired(t *testing.T) {
	assert.Empty(t, LeadInput{Name: "Ana", Email: "ana@example.com", Phone: "11999990000"}.MissingRequired())
	assert.Equal(t, []string{"email", "phone"}, LeadInput{Name: "Ana", Phone: "  "}.MissingRequired())
	assert.Equal(t, []string{"email", "name", "phone"}, LeadInput{}.MissingRequired())
}

func TestBrokerInput_MissingRequired(t *testing.T) {
	phone := "11988887777"
	assert.Empty(t, BrokerInput{Name: "Carlos", Email: "c@example.com", Phone: &phone}.MissingRequired())
	assert.Equal(t, []string{"phone"}, BrokerInput{Name: "Carlos", Email: "c@example.com"}.MissingRequired())
}

func TestImportedLead_Input(t *testing.T) {
	city := "Campinas"
	in := ImportedLead{Name: "Ana", Email: "ana@example.com", Phone: "1199", City: &city}.Input()

	assert.Equal(t, "Ana", in.Name)
	assert.Equal(t, &city, in.City)
	assert.Nil(t, in.PlanType)
	if assert.NotNil(t, in.Source) {
		assert.Equal(t, SourceImport, *in.Source)
	}
	if assert.NotNil(t, in.Status) {
		assert.Equal(t, StatusNew, *in.Status)
	}
}
