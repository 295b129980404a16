package events

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"conectaleads/internal/logging"
	"conectaleads/internal/model"
	"conectaleads/internal/repository/mocks"
)

func TestDecode(t *testing.T) {
	ev, err := Decode[LeadsImported]([]byte(`{"batch_id":"b1","filename":"a.csv","count":3}`))
	require.NoError(t, err)
	assert.Equal(t, LeadsImported{BatchID: "b1", Filename: "a.csv", Count: 3}, ev)

	_, err = Decode[LeadsImported]([]byte(`{`))
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
	assert.Contains(t, err.Error(), "decode payload failed")
}

func TestNotificationHandler(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		key       string
		payload   any
		wantKind  string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "lead created",
			key:       RKLeadCreated,
			payload:   LeadCreated{LeadID: 1, Name: "Ana"},
			wantKind:  KindLead,
			wantTitle: "Novo lead cadastrado",
			wantDesc:  "Ana foi adicionado à sua base de leads.",
		},
		{
			name:      "lead status changed",
			key:       RKLeadUpdated,
			payload:   LeadUpdated{LeadID: 1, Name: "Ana", Status: "fechado"},
			wantKind:  KindLead,
			wantTitle: "Lead atualizado",
			wantDesc:  "Ana está agora com status fechado.",
		},
		{
			name:      "import completed",
			key:       RKLeadsImported,
			payload:   LeadsImported{BatchID: "b1", Filename: "marco.csv", Count: 12},
			wantKind:  KindImport,
			wantTitle: "Importação concluída",
			wantDesc:  "12 leads importados de marco.csv.",
		},
		{
			name:      "import failed",
			key:       RKImportFailed,
			payload:   ImportFailed{BatchID: "b2", Filename: "x.csv", Reason: "no valid leads"},
			wantKind:  KindImport,
			wantTitle: "Falha na importação",
			wantDesc:  "x.csv: no valid leads",
		},
		{
			name:      "broker created",
			key:       RKBrokerCreated,
			payload:   BrokerCreated{BrokerID: 2, Name: "Bruno"},
			wantKind:  KindBroker,
			wantTitle: "Novo corretor cadastrado",
			wantDesc:  "Bruno agora faz parte da equipe.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockNotificationRepository)
			h := NewNotificationHandler(repo, logging.New(&bytes.Buffer{}, time.UTC))

			repo.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
				return n.Kind == tt.wantKind && n.Title == tt.wantTitle && n.Description == tt.wantDesc
			})).Return(&model.Notification{ID: "n-1", Kind: tt.wantKind}, nil).Once()

			// Direct goes through the same JSON path as the broker.
			err := NewDirect(h).Publish(ctx, tt.key, tt.payload)
			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestNotificationHandler_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown key is skipped", func(t *testing.T) {
		var buf bytes.Buffer
		repo := new(mocks.MockNotificationRepository)
		h := NewNotificationHandler(repo, logging.New(&buf, time.UTC))

		assert.NoError(t, h.Handle(ctx, "booking.created", []byte(`{}`)))
		assert.Contains(t, buf.String(), "event_skipped")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("bad payload", func(t *testing.T) {
		repo := new(mocks.MockNotificationRepository)
		h := NewNotificationHandler(repo, logging.New(&bytes.Buffer{}, time.UTC))

		err := h.Handle(ctx, RKLeadCreated, []byte(`not json`))
		var de *DecodeError
		assert.ErrorAs(t, err, &de)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(mocks.MockNotificationRepository)
		h := NewNotificationHandler(repo, logging.New(&bytes.Buffer{}, time.UTC))
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))

		err := h.Handle(ctx, RKBrokerCreated, []byte(`{"broker_id":1,"name":"B"}`))
		assert.EqualError(t, err, "store notification: db down")
	})
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard{}.Publish(context.Background(), RKLeadCreated, LeadCreated{}))
}
