package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"conectaleads/internal/model"
)

// Notification kinds.
const (
	KindLead   = "lead"
	KindImport = "import"
	KindBroker = "broker"
)

// NotificationStore persists notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
}

// NotificationHandler turns domain events into notification center entries.
type NotificationHandler struct {
	store NotificationStore
	log   *zap.Logger
}

func NewNotificationHandler(store NotificationStore, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{store: store, log: log.With(zap.String("component", "notifier"))}
}

var _ Handler = (*NotificationHandler)(nil)

// Handle stores one notification per known event. Unknown keys are skipped.
func (h *NotificationHandler) Handle(ctx context.Context, key string, body []byte) error {
	n, err := notificationFor(key, body)
	if err != nil {
		return err
	}
	if n == nil {
		h.log.Info("event_skipped", zap.String("routing_key", key))
		return nil
	}

	saved, err := h.store.Create(ctx, n)
	if err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	h.log.Info("notification_created",
		zap.String("routing_key", key),
		zap.String("notification_id", saved.ID),
		zap.String("kind", saved.Kind),
	)
	return nil
}

func notificationFor(key string, body []byte) (*model.Notification, error) {
	switch key {
	case RKLeadCreated:
		ev, err := Decode[LeadCreated](body)
		if err != nil {
			return nil, err
		}
		return &model.Notification{
			Kind:        KindLead,
			Title:       "Novo lead cadastrado",
			Description: fmt.Sprintf("%s foi adicionado à sua base de leads.", ev.Name),
		}, nil

	case RKLeadUpdated:
		ev, err := Decode[LeadUpdated](body)
		if err != nil {
			return nil, err
		}
		desc := fmt.Sprintf("Os dados de %s foram atualizados.", ev.Name)
		if ev.Status != "" {
			desc = fmt.Sprintf("%s está agora com status %s.", ev.Name, ev.Status)
		}
		return &model.Notification{Kind: KindLead, Title: "Lead atualizado", Description: desc}, nil

	case RKLeadsImported:
		ev, err := Decode[LeadsImported](body)
		if err != nil {
			return nil, err
		}
		return &model.Notification{
			Kind:        KindImport,
			Title:       "Importação concluída",
			Description: fmt.Sprintf("%d leads importados de %s.", ev.Count, ev.Filename),
		}, nil

	case RKImportFailed:
		ev, err := Decode[ImportFailed](body)
		if err != nil {
			return nil, err
		}
		return &model.Notification{
			Kind:        KindImport,
			Title:       "Falha na importação",
			Description: fmt.Sprintf("%s: %s", ev.Filename, ev.Reason),
		}, nil

	case RKBrokerCreated:
		ev, err := Decode[BrokerCreated](body)
		if err != nil {
			return nil, err
		}
		return &model.Notification{
			Kind:        KindBroker,
			Title:       "Novo corretor cadastrado",
			Description: fmt.Sprintf("%s agora faz parte da equipe.", ev.Name),
		}, nil
	}
	return nil, nil
}
