package csvimport

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conectaleads/internal/model"
)

func strPtr(s string) *string { return &s }

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []model.ImportedLead
		wantErr error
	}{
		{
			name:  "all fields mapped",
			input: "nome,email,telefone,cidade,tipo_plano\nAna Lima,ana@example.com,11999990000,Campinas,familiar\n",
			want: []model.ImportedLead{{
				Name: "Ana Lima", Email: "ana@example.com", Phone: "11999990000",
				City: strPtr("Campinas"), PlanType: strPtr("familiar"),
			}},
		},
		{
			name:    "header only",
			input:   "nome,email,telefone\n",
			wantErr: ErrTooFewLines,
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: ErrTooFewLines,
		},
		{
			name:    "blank lines do not count as data",
			input:   "nome,email,telefone\n\n   \n",
			wantErr: ErrTooFewLines,
		},
		{
			name:    "row of empty cells is a data row",
			input:   "nome,email,telefone\n,,\n",
			wantErr: ErrNoValidLeads,
		},
		{
			name:    "unterminated quote rejects the whole file",
			input:   "nome,email,telefone\nAna,a@x.com,1\n\"Bia,b@x.com,2\nCaio,c@x.com,3\nDani,d@x.com,4\n",
			wantErr: ErrMalformed,
		},
		{
			name:    "quote reopened mid-field never closes",
			input:   "nome,email,telefone\n\"Ana\" Lima,a@x.com,1\nBia,b@x.com,2\n",
			wantErr: ErrMalformed,
		},
		{
			name:    "only row missing email",
			input:   "nome,email,telefone\nAna,,11999990000\n",
			wantErr: ErrNoValidLeads,
		},
		{
			name:  "row missing email is dropped",
			input: "nome,email,telefone\nAna,,1199\nBruno,bruno@example.com,1198\n",
			want:  []model.ImportedLead{{Name: "Bruno", Email: "bruno@example.com", Phone: "1198"}},
		},
		{
			name:  "english headers in mixed case",
			input: " Name ,E-MAIL,Phone,CITY,Plan\nCarla,carla@example.com,2197,Niterói,premium\n",
			want: []model.ImportedLead{{
				Name: "Carla", Email: "carla@example.com", Phone: "2197",
				City: strPtr("Niterói"), PlanType: strPtr("premium"),
			}},
		},
		{
			name:  "tipo de plano and plano synonyms",
			input: "nome,email,telefone,tipo de plano\nDavi,davi@example.com,3196,individual\n",
			want: []model.ImportedLead{{
				Name: "Davi", Email: "davi@example.com", Phone: "3196", PlanType: strPtr("individual"),
			}},
		},
		{
			name:  "optional fields default to absent",
			input: "nome,email,telefone,cidade,plano\nEva,eva@example.com,4195,,\n",
			want:  []model.ImportedLead{{Name: "Eva", Email: "eva@example.com", Phone: "4195"}},
		},
		{
			name:  "quoted fields keep embedded commas",
			input: "nome,email,telefone,cidade\n\"Souza, Fabio\",\"fabio@example.com\",\"(11) 9999-0000\",\"São Paulo, SP\"\n",
			want: []model.ImportedLead{{
				Name: "Souza, Fabio", Email: "fabio@example.com", Phone: "(11) 9999-0000",
				City: strPtr("São Paulo, SP"),
			}},
		},
		{
			name:  "stray quotes are stripped",
			input: "nome,email,telefone\nGabi \"G\" Reis,gabi@example.com,5194\n",
			want:  []model.ImportedLead{{Name: "Gabi G Reis", Email: "gabi@example.com", Phone: "5194"}},
		},
		{
			name:  "escaped quotes inside a quoted field",
			input: "nome,email,telefone\n\"Joana \"\"Jo\"\" Prado\",joana@example.com,8191\nKleber,kleber@example.com,8190",
			want: []model.ImportedLead{
				{Name: "Joana Jo Prado", Email: "joana@example.com", Phone: "8191"},
				{Name: "Kleber", Email: "kleber@example.com", Phone: "8190"},
			},
		},
		{
			name:  "crlf line endings and byte order mark",
			input: "\xEF\xBB\xBFnome,email,telefone\r\nHugo,hugo@example.com,6193\r\n",
			want:  []model.ImportedLead{{Name: "Hugo", Email: "hugo@example.com", Phone: "6193"}},
		},
		{
			name:  "unknown headers ignored and short rows tolerated",
			input: "nome,idade,email,telefone,cidade\nIris,30,iris@example.com,7192\n",
			want:  []model.ImportedLead{{Name: "Iris", Email: "iris@example.com", Phone: "7192"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_SameInputSameRecords(t *testing.T) {
	input := []byte("nome,email,telefone,cidade\nAna,ana@example.com,1199,Campinas\nBruno,,1198,\nCarla,carla@example.com,1197,\n")

	first, err := Parse(bytes.NewReader(input))
	require.NoError(t, err)
	second, err := Parse(bytes.NewReader(input))
	require.NoError(t, err)

	assert.Len(t, first, 2)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parse differs (-first +second):\n%s", diff)
	}
}

func TestParse_ReadError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(errors.New("disk gone")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read csv: disk gone")
}

func TestParseFile(t *testing.T) {
	t.Run("excel rejected", func(t *testing.T) {
		for _, name := range []string{"leads.xlsx", "LEADS.XLS"} {
			_, err := ParseFile(strings.NewReader("irrelevant"), name)
			assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
		}
	})

	t.Run("csv parsed", func(t *testing.T) {
		got, err := ParseFile(strings.NewReader("name,email,phone\nJo,jo@example.com,1\n"), "leads.csv")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestCanonicalField(t *testing.T) {
	field, ok := CanonicalField("  TELEFONE ")
	assert.True(t, ok)
	assert.Equal(t, FieldPhone, field)

	_, ok = CanonicalField("idade")
	assert.False(t, ok)
}
