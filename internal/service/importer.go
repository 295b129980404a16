package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"conectaleads/internal/cache"
	"conectaleads/internal/csvimport"
	"conectaleads/internal/events"
	"conectaleads/internal/metrics"
	"conectaleads/internal/model"
	"conectaleads/internal/repository"
	"conectaleads/internal/storage"
)

// DownloadURLExpiry bounds presigned download links.
const DownloadURLExpiry = 15 * time.Minute

var tracer = otel.Tracer("conectaleads/internal/service")

// ImportResult is the outcome of a successful CSV import.
type ImportResult struct {
	Batch    *model.ImportBatch `json:"batch"`
	Imported int                `json:"imported"`
	Leads    []model.Lead       `json:"leads"`
}

// ImportListResult is a page of import batches.
type ImportListResult struct {
	Items []model.ImportBatch `json:"data"`
	Total int                 `json:"total"`
}

// ImportService handles bulk lead imports from CSV files.
type ImportService interface {
	// Import archives the original file, records an import batch, parses the
	// CSV and inserts every accepted row in one transaction. A file that yields
	// no valid lead stores nothing and marks the batch failed.
	Import(ctx context.Context, r io.Reader, filename string, size int64) (*ImportResult, error)
	// Template writes the downloadable sample CSV.
	Template(w io.Writer) error
	List(ctx context.Context, limit, offset int) (*ImportListResult, error)
	Get(ctx context.Context, id string) (*model.ImportBatch, error)
	// DownloadURL returns a presigned link to the archived original file.
	DownloadURL(ctx context.Context, id string) (string, error)
	// Preview re-parses the archived file of a batch without inserting anything.
	Preview(ctx context.Context, id string) ([]model.ImportedLead, error)
}

type importService struct {
	store    storage.Storage
	batches  repository.ImportBatchRepository
	leads    repository.LeadRepository
	pub      events.Publisher
	cache    cache.Cache
	metrics  *metrics.Import
	maxBytes int64
	log      *zap.Logger
}

// ImportDeps groups the collaborators of the import service.
type ImportDeps struct {
	Store    storage.Storage
	Batches  repository.ImportBatchRepository
	Leads    repository.LeadRepository
	Events   events.Publisher
	Cache    cache.Cache
	Metrics  *metrics.Import
	MaxBytes int64
	Log      *zap.Logger
}

func NewImportService(d ImportDeps) ImportService {
	return &importService{
		store:    d.Store,
		batches:  d.Batches,
		leads:    d.Leads,
		pub:      d.Events,
		cache:    d.Cache,
		metrics:  d.Metrics,
		maxBytes: d.MaxBytes,
		log:      d.Log.With(zap.String("component", "import_service")),
	}
}

func (s *importService) Import(ctx context.Context, r io.Reader, filename string, size int64) (res *ImportResult, err error) {
	ctx, span := tracer.Start(ctx, "leads.import")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("import.filename", filename), attribute.Int64("import.size", size))

	if r == nil {
		return nil, ErrReaderNil
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		s.metrics.Fail(metrics.ReasonTooLarge)
		return nil, ErrFileTooLarge
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext == ".xls" || ext == ".xlsx" {
		s.metrics.Fail(metrics.ReasonUnsupported)
		return nil, csvimport.ErrUnsupportedFormat
	}

	data, err := s.readAll(r)
	if err != nil {
		return nil, err
	}

	key := storage.ImportKey(filename)
	info, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "text/csv",
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		s.metrics.Fail(metrics.ReasonStorage)
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	batch, err := s.batches.Create(ctx, &model.ImportBatch{
		Filename:    filename,
		StoragePath: info.Key,
		Size:        int64(len(data)),
		Status:      model.ImportProcessing,
	})
	if err != nil {
		s.metrics.Fail(metrics.ReasonDatabase)
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	span.SetAttributes(attribute.String("import.batch_id", batch.ID))

	parsed, err := csvimport.Parse(bytes.NewReader(data))
	if err != nil {
		s.metrics.Fail(metrics.ReasonInvalidCSV)
		s.fail(ctx, batch, err)
		return nil, err
	}

	inputs := make([]model.LeadInput, len(parsed))
	for i, l := range parsed {
		inputs[i] = l.Input()
	}
	stored, err := s.leads.CreateMany(ctx, inputs)
	if err != nil {
		s.metrics.Fail(metrics.ReasonDatabase)
		s.fail(ctx, batch, err)
		return nil, fmt.Errorf("insert leads: %w", storeError(err, "lead"))
	}

	if err := s.batches.UpdateResult(ctx, batch.ID, model.ImportCompleted, len(stored), nil); err != nil {
		// The leads are committed; only the audit row is stale.
		s.log.Warn("import_batch_update_failed", zap.String("batch_id", batch.ID), zap.Error(err))
	}
	batch.Status = model.ImportCompleted
	batch.LeadCount = len(stored)

	s.metrics.Imported.Add(float64(len(stored)))
	span.SetAttributes(attribute.Int("import.lead_count", len(stored)))
	invalidateInsights(ctx, s.cache)
	s.publish(ctx, events.RKLeadsImported, events.LeadsImported{
		BatchID:  batch.ID,
		Filename: filename,
		Count:    len(stored),
	})
	s.log.Info("import_completed",
		zap.String("batch_id", batch.ID),
		zap.String("filename", filename),
		zap.Int("lead_count", len(stored)),
	)

	return &ImportResult{Batch: batch, Imported: len(stored), Leads: stored}, nil
}

// readAll buffers the upload so it can be archived and parsed, refusing
// anything over the size limit even when the declared size was wrong.
func (s *importService) readAll(r io.Reader) ([]byte, error) {
	if s.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		s.metrics.Fail(metrics.ReasonTooLarge)
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// fail marks the batch failed and announces it. The original error is what
// the caller returns, so bookkeeping errors are only logged.
func (s *importService) fail(ctx context.Context, batch *model.ImportBatch, cause error) {
	msg := cause.Error()
	if err := s.batches.UpdateResult(ctx, batch.ID, model.ImportFailed, 0, &msg); err != nil {
		s.log.Warn("import_batch_update_failed", zap.String("batch_id", batch.ID), zap.Error(err))
	}
	s.publish(ctx, events.RKImportFailed, events.ImportFailed{
		BatchID:  batch.ID,
		Filename: batch.Filename,
		Reason:   msg,
	})
	s.log.Warn("import_failed",
		zap.String("batch_id", batch.ID),
		zap.String("filename", batch.Filename),
		zap.String("reason", msg),
	)
}

func (s *importService) publish(ctx context.Context, key string, v any) {
	if err := s.pub.Publish(ctx, key, v); err != nil {
		s.log.Warn("event_publish_failed", zap.String("routing_key", key), zap.Error(err))
	}
}

func (s *importService) Template(w io.Writer) error {
	return csvimport.WriteTemplate(w)
}

func (s *importService) List(ctx context.Context, limit, offset int) (*ImportListResult, error) {
	res, err := s.batches.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ImportListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *importService) Get(ctx context.Context, id string) (*model.ImportBatch, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("import batch: %w", ErrNotFound)
	}
	b, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "import batch")
	}
	return b, nil
}

func (s *importService) DownloadURL(ctx context.Context, id string) (string, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, b.StoragePath, DownloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u, nil
}

func (s *importService) Preview(ctx context.Context, id string) ([]model.ImportedLead, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rc, _, err := s.store.Get(ctx, b.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("fetch archived file: %w", err)
	}
	defer rc.Close()
	return csvimport.Parse(rc)
}
