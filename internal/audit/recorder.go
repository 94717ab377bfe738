package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/google/uuid"
)

// Recorder buffers routine audit entries and writes critical ones straight through.
// Every entry is also emitted on the structured log.
type Recorder struct {
	sink          portsrepo.AuditWriter
	batchSize     int
	flushInterval time.Duration
	flushTimeout  time.Duration
	now           func() time.Time

	mu      sync.Mutex
	pending []domain.AuditEntry

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stop      chan struct{}
	done      chan struct{}
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithBatchSize sets how many routine entries trigger an early flush.
func WithBatchSize(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithFlushInterval sets how often buffered entries are written.
func WithFlushInterval(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.flushInterval = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// NewRecorder creates a Recorder writing to sink. Call Start to enable periodic flushing.
func NewRecorder(sink portsrepo.AuditWriter, opts ...Option) *Recorder {
	r := &Recorder{
		sink:          sink,
		batchSize:     50,
		flushInterval: 2 * time.Second,
		flushTimeout:  5 * time.Second,
		now:           time.Now,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ portssvc.Auditor = (*Recorder)(nil)

// Start launches the background flush loop.
func (r *Recorder) Start() {
	r.startOnce.Do(r.run)
}

func (r *Recorder) run() {
	r.mu.Lock()
	r.started = true
	r.mu.Unlock()
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.flushWithTimeout(context.Background())
			case <-r.stop:
				return
			}
		}
	}()
}

// Record stores the entry. Critical entries flush the whole buffer synchronously,
// preserving order, and survive cancellation of the request context.
func (r *Recorder) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = r.now().UTC()
	}
	if entry.Actor == "" {
		entry.Actor = domain.SystemActor
	}
	if entry.Severity == "" {
		entry.Severity = domain.AuditInfo
	}
	r.log(ctx, entry)

	r.mu.Lock()
	r.pending = append(r.pending, entry)
	full := len(r.pending) >= r.batchSize
	r.mu.Unlock()

	if entry.Severity == domain.AuditCritical || full {
		r.flushWithTimeout(context.WithoutCancel(ctx))
	}
}

// Flush writes all buffered entries. On failure the entries are kept for the next attempt.
func (r *Recorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	if err := r.sink.SaveAuditEntries(ctx, batch); err != nil {
		r.mu.Lock()
		r.pending = append(batch, r.pending...)
		r.mu.Unlock()
		return err
	}
	return nil
}

// Close stops the flush loop and writes what is left.
func (r *Recorder) Close(ctx context.Context) error {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if started {
		select {
		case <-r.done:
		case <-ctx.Done():
		}
	}
	return r.Flush(ctx)
}

// Pending reports how many entries await a flush.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Recorder) flushWithTimeout(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.flushTimeout)
	defer cancel()
	if err := r.Flush(ctx); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to flush audit entries",
			slog.String("error", err.Error()),
			slog.Int("pending", r.Pending()))
	}
}

func (r *Recorder) log(ctx context.Context, entry domain.AuditEntry) {
	level := slog.LevelInfo
	switch entry.Severity {
	case domain.AuditWarning:
		level = slog.LevelWarn
	case domain.AuditCritical:
		level = slog.LevelError
	}
	attrs := []slog.Attr{
		slog.String("audit_id", entry.EntryID),
		slog.String("organization_id", entry.OrganizationID),
		slog.String("actor", entry.Actor),
		slog.String("action", entry.Action),
		slog.String("outcome", entry.Outcome),
		slog.String("smart_code", string(entry.SmartCode)),
		slog.String("amount", entry.Amount.String()),
	}
	if entry.ErrorCode != "" {
		attrs = append(attrs, slog.String("error_code", entry.ErrorCode))
	}
	if entry.TargetID != "" {
		attrs = append(attrs, slog.String("target_id", entry.TargetID))
	}
	middleware.GetLoggerFromCtx(ctx).LogAttrs(ctx, level, "audit", attrs...)
}
