package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"conectaleads/internal/cache"
	"conectaleads/internal/events"
	"conectaleads/internal/model"
	"conectaleads/internal/repository"
	"conectaleads/internal/storage"
)

// BrokerService manages the broker (corretor) directory.
type BrokerService interface {
	List(ctx context.Context, f repository.BrokerFilter) ([]model.Broker, error)
	Get(ctx context.Context, id int64) (*model.Broker, error)
	Create(ctx context.Context, in model.BrokerInput) (*model.Broker, error)
	Update(ctx context.Context, id int64, in model.BrokerInput) (*model.Broker, error)
	// ToggleActive flips the active flag.
	ToggleActive(ctx context.Context, id int64) (*model.Broker, error)
	UploadAvatar(ctx context.Context, id int64, r io.Reader, filename, contentType string, size int64) (*model.Broker, error)
	// AvatarURL returns a presigned link to the broker's avatar.
	AvatarURL(ctx context.Context, id int64) (string, error)
}

type brokerService struct {
	repo  repository.BrokerRepository
	store storage.Storage
	pub   events.Publisher
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewBrokerService(repo repository.BrokerRepository, store storage.Storage, pub events.Publisher, c cache.Cache, ttl time.Duration, log *zap.Logger) BrokerService {
	return &brokerService{
		repo:  repo,
		store: store,
		pub:   pub,
		cache: c,
		ttl:   ttl,
		log:   log.With(zap.String("component", "broker_service")),
	}
}

// brokerListKeys are every cacheable listing: all, active and inactive.
var brokerListKeys = []string{"brokers:all", "brokers:active=true", "brokers:active=false"}

// brokerListKey returns the cache key for f. Searches are not cached.
func brokerListKey(f repository.BrokerFilter) (string, bool) {
	if strings.TrimSpace(f.Search) != "" {
		return "", false
	}
	if f.Active == nil {
		return brokerListKeys[0], true
	}
	return "brokers:active=" + strconv.FormatBool(*f.Active), true
}

func (s *brokerService) List(ctx context.Context, f repository.BrokerFilter) ([]model.Broker, error) {
	key, ok := brokerListKey(f)
	if !ok {
		return s.repo.List(ctx, f)
	}
	return cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]model.Broker, error) {
		return s.repo.List(ctx, f)
	})
}

func (s *brokerService) Get(ctx context.Context, id int64) (*model.Broker, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "broker")
	}
	return b, nil
}

func (s *brokerService) Create(ctx context.Context, in model.BrokerInput) (*model.Broker, error) {
	in = normalizeBroker(in)
	if err := validate(in.MissingRequired()); err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, storeError(err, "broker")
	}
	s.invalidate(ctx)

	if err := s.pub.Publish(ctx, events.RKBrokerCreated, events.BrokerCreated{BrokerID: b.ID, Name: b.Name}); err != nil {
		s.log.Warn("event_publish_failed", zap.String("routing_key", events.RKBrokerCreated), zap.Error(err))
	}
	return b, nil
}

func (s *brokerService) Update(ctx context.Context, id int64, in model.BrokerInput) (*model.Broker, error) {
	in = normalizeBroker(in)
	if err := validate(in.MissingRequired()); err != nil {
		return nil, err
	}

	b, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, storeError(err, "broker")
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *brokerService) ToggleActive(ctx context.Context, id int64) (*model.Broker, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.SetActive(ctx, id, !cur.Active)
	if err != nil {
		return nil, storeError(err, "broker")
	}
	s.invalidate(ctx)
	return b, nil
}

// UploadAvatar stores the image under a fresh key and points the broker at it.
// The new object is removed if the broker row cannot be updated; the previous
// avatar is removed once the update succeeds.
func (s *brokerService) UploadAvatar(ctx context.Context, id int64, r io.Reader, filename, contentType string, size int64) (*model.Broker, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidImage
	}
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	info, err := s.store.Put(ctx, storage.AvatarKey(id, filename), r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	b, err := s.repo.SetAvatar(ctx, id, info.Key)
	if err != nil {
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", storeError(err, "broker"))
	}

	if cur.AvatarURL != nil && *cur.AvatarURL != info.Key {
		if err := s.store.Delete(ctx, *cur.AvatarURL); err != nil {
			s.log.Warn("avatar_cleanup_failed", zap.Int64("broker_id", id), zap.String("key", *cur.AvatarURL), zap.Error(err))
		}
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *brokerService) AvatarURL(ctx context.Context, id int64) (string, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if b.AvatarURL == nil {
		return "", fmt.Errorf("avatar: %w", ErrNotFound)
	}
	u, err := s.store.PresignGet(ctx, *b.AvatarURL, DownloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u, nil
}

func (s *brokerService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, brokerListKeys...)
}

func normalizeBroker(in model.BrokerInput) model.BrokerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = trimOptional(in.Phone)
	in.Role = trimOptional(in.Role)
	return in
}
