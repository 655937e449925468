package extraction

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"github.com/NaiHeeeee/repkg-gui/internal/logging"
	"github.com/NaiHeeeee/repkg-gui/internal/services"
	"github.com/NaiHeeeee/repkg-gui/internal/services/repkg"
)

const lockFileName = ".repkg-gui.lock"

// Recorder persists finished jobs. The history store implements it; a nil
// recorder disables persistence.
type Recorder interface {
	RecordJob(ctx context.Context, job *Job) error
}

// Orchestrator runs extraction jobs. Batches are sequential: one RePKG
// process at a time, in source order, continuing past per-item failures.
type Orchestrator struct {
	unpacker repkg.Unpacker
	recorder Recorder
	logger   *slog.Logger
}

func NewOrchestrator(unpacker repkg.Unpacker, recorder Recorder, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		unpacker: unpacker,
		recorder: recorder,
		logger:   logging.NewComponentLogger(logger, "extraction"),
	}
}

// Run validates the request, then extracts every source into destination.
// The returned job carries per-item outcomes; a batch where every item
// failed still completes. The error return covers validation and
// cancellation, mirroring the job's Failed state.
func (o *Orchestrator) Run(ctx context.Context, sources []string, destination string, opts Options) (*Job, error) {
	sources = dedupeSources(sources)
	job := newJob(sources, destination, opts)
	ctx = services.WithJobID(ctx, job.ID)
	log := logging.WithContext(ctx, o.logger)

	job.State = StateValidating
	release, err := o.validate(ctx, job)
	if err != nil {
		job.finish(StateFailed, err.Error())
		o.record(ctx, job)
		return job, err
	}
	defer release()

	job.State = StateRunning
	log.Info("extraction started",
		logging.Int("sources", len(sources)),
		logging.String("destination", destination))

	flags := opts.ExtractFlags(destination)
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			job.finish(StateFailed, "cancelled")
			o.record(ctx, job)
			return job, services.Wrap(services.ErrTransient, "extraction", "run", "batch cancelled", err)
		}

		_, itemErr := o.unpacker.Extract(ctx, source, flags)
		job.recordItem(source, itemErr)
		if itemErr != nil {
			log.Warn("item failed", logging.String("source", source), logging.Error(itemErr))
			continue
		}
		log.Info("item extracted", logging.String("source", source))
	}

	attrs := []logging.Attr{
		logging.Int("success", job.Success),
		logging.Int("failure", job.Failure),
	}
	if opts.OnlyImages && job.Success > 0 {
		deleted := CleanupNonMedia(destination, o.logger)
		attrs = append(attrs, logging.Int("cleaned", deleted))
	}

	job.finish(StateCompleted, "")
	log.Info("extraction finished", logging.Args(attrs...)...)
	o.record(ctx, job)
	return job, nil
}

// validate checks the request shape and claims the destination: it must
// exist (created on demand), be writable, and not be held by another job.
// The returned release func drops the advisory lock.
func (o *Orchestrator) validate(ctx context.Context, job *Job) (func(), error) {
	if len(job.Sources) == 0 {
		return nil, services.Wrap(services.ErrValidation, "extraction", "validate", "no sources selected", nil)
	}
	for _, source := range job.Sources {
		if strings.TrimSpace(source) == "" {
			return nil, services.Wrap(services.ErrValidation, "extraction", "validate", "empty source path", nil)
		}
	}
	if strings.TrimSpace(job.Destination) == "" {
		return nil, services.Wrap(services.ErrValidation, "extraction", "validate", "destination required", nil)
	}

	if err := os.MkdirAll(job.Destination, 0o755); err != nil {
		return nil, services.Wrap(services.ErrValidation, "extraction", "validate", "create destination", err)
	}
	if err := unix.Access(job.Destination, unix.W_OK); err != nil {
		return nil, services.Wrap(services.ErrValidation, "extraction", "validate", "destination not writable", err)
	}

	lock := flock.New(filepath.Join(job.Destination, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "extraction", "validate", "acquire destination lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "extraction", "validate",
			"another extraction is running against this destination", nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			o.logger.Warn("release destination lock", logging.Error(err))
		}
	}, nil
}

func (o *Orchestrator) record(ctx context.Context, job *Job) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.RecordJob(context.WithoutCancel(ctx), job); err != nil {
		o.logger.Warn("record job", logging.String(logging.FieldJobID, job.ID), logging.Error(err))
	}
}

// dedupeSources drops repeated archives while preserving first-seen order.
// Duplicate base names with distinct paths are kept; only exact repeats of
// the same path collapse.
func dedupeSources(sources []string) []string {
	seen := make(map[string]struct{}, len(sources))
	out := make([]string, 0, len(sources))
	for _, source := range sources {
		key := filepath.Clean(source)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, source)
	}
	return out
}
