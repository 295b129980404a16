package csvimport

import (
	"encoding/csv"
	"io"
)

// TemplateFilename is the suggested download name for the import template.
const TemplateFilename = "modelo_importacao_leads.csv"

var templateRows = [][]string{
	{"nome", "email", "telefone", "cidade", "tipo de plano"},
	{"João Silva", "joao.silva@email.com", "(11) 99999-1111", "São Paulo", "individual"},
	{"Maria Santos", "maria.santos@email.com", "(21) 98888-2222", "Rio de Janeiro", "familiar"},
	{"Pedro Costa", "pedro.costa@email.com", "(31) 97777-3333", "Belo Horizonte", "empresarial"},
}

// WriteTemplate writes the import template: the recognized header row followed
// by fixed sample rows.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(templateRows); err != nil {
		return err
	}
	return cw.Error()
}
