package hook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"qbsort/internal/classify"
	"qbsort/internal/config"
	"qbsort/internal/journal"
	"qbsort/internal/library"
	"qbsort/internal/logging"
	"qbsort/internal/notifications"
	"qbsort/internal/qbittorrent"
	"qbsort/internal/services"
)

// Request carries the three values qBittorrent hands to the hook command.
type Request struct {
	Hash     string
	Name     string
	SavePath string
}

// Outcome summarizes a completed run.
type Outcome struct {
	RunID      string
	Category   classify.Category
	Label      string
	Pattern    string
	TargetPath string
	Moved      bool
}

// Runner executes the per-invocation pipeline: ensure category directories,
// classify the torrent, and relocate it through the qBittorrent WebUI when
// its save path differs from the category target.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	rules    *classify.RuleSet
	resolver *library.Resolver
	client   *qbittorrent.Client
	journal  *journal.Journal
	notifier notifications.Service
}

// NewRunner constructs a runner with default dependencies. A journal that
// fails to open degrades to a warning; everything else is fatal.
func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "hook", "init", "config is required", nil)
	}

	rules, err := classify.NewRuleSet(cfg.Rules.TV, cfg.Rules.Movie)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "hook", "compile rules", "invalid classification pattern", err)
	}

	client, err := qbittorrent.New(cfg, logger)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "hook", "init qbittorrent client", "build webui client", err)
	}

	runLog := logging.NewComponentLogger(logger, "hook")

	var store *journal.Journal
	if cfg.Journal.Enabled {
		store, err = journal.Open(cfg)
		if err != nil {
			runLog.Warn("journal unavailable", logging.Error(err))
			store = nil
		}
	}

	return NewRunnerWithDependencies(cfg, logger, rules, library.NewResolver(cfg), client, store, notifications.NewService(cfg)), nil
}

// NewRunnerWithDependencies allows injecting collaborators (used in tests).
func NewRunnerWithDependencies(
	cfg *config.Config,
	logger *slog.Logger,
	rules *classify.RuleSet,
	resolver *library.Resolver,
	client *qbittorrent.Client,
	store *journal.Journal,
	notifier notifications.Service,
) *Runner {
	runLog := logger
	if runLog != nil {
		runLog = runLog.With(logging.String("component", "hook"))
	}
	return &Runner{
		cfg:      cfg,
		logger:   runLog,
		rules:    rules,
		resolver: resolver,
		client:   client,
		journal:  store,
		notifier: notifier,
	}
}

// Journal exposes the run journal, which may be nil when disabled.
func (r *Runner) Journal() *journal.Journal {
	return r.journal
}

// Close releases the journal handle.
func (r *Runner) Close() error {
	return r.journal.Close()
}

// Run executes one hook invocation. Every returned error carries a services
// marker so the caller can name the failure class; the process itself only
// ever translates non-nil into exit status 1.
func (r *Runner) Run(ctx context.Context, req Request) (*Outcome, error) {
	if strings.TrimSpace(req.Hash) == "" || strings.TrimSpace(req.SavePath) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "hook", "validate request", "hash and save path are required", nil)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithTorrentHash(ctx, req.Hash)
	logger := logging.WithContext(ctx, r.logger)

	logger.Info("starting run",
		logging.String("name", req.Name),
		logging.String("save_path", req.SavePath),
	)

	if err := r.resolver.EnsureAll(); err != nil {
		return nil, services.Wrap(services.ErrDirectory, "hook", "ensure directories", "create category directories", err)
	}

	match := r.rules.Classify(req.Name)
	label := r.cfg.CategoryLabel(string(match.Category))
	target, ok := r.resolver.PathFor(match.Category)
	if !ok {
		return nil, services.Wrap(services.ErrDirectory, "hook", "resolve target", fmt.Sprintf("no target directory for category %s", match.Category), nil)
	}

	logger.Info("torrent classified",
		logging.String(logging.FieldCategory, string(match.Category)),
		logging.String("pattern", match.Pattern),
		logging.String("target_path", target),
	)

	outcome := &Outcome{
		RunID:      runID,
		Category:   match.Category,
		Label:      label,
		Pattern:    match.Pattern,
		TargetPath: target,
	}

	if library.SamePath(req.SavePath, target) {
		logger.Info("torrent already in place", logging.String(logging.FieldOutcome, string(journal.OutcomeNoop)))
		r.record(ctx, logger, req, outcome, journal.OutcomeNoop, "", nil)
		r.notify(ctx, logger, notifications.EventRunNoop, req, outcome, nil)
		return outcome, nil
	}

	session, err := r.client.Login(ctx)
	if err != nil {
		r.record(ctx, logger, req, outcome, journal.OutcomeFailed, "login", err)
		r.notify(ctx, logger, notifications.EventRunFailed, req, outcome, err)
		return nil, services.Wrap(services.ErrAuth, "hook", "login", "authenticate with qbittorrent webui", err)
	}
	logger.Debug("authenticated with qbittorrent")

	if err := r.client.Apply(ctx, session, req.Hash, target, label); err != nil {
		r.record(ctx, logger, req, outcome, journal.OutcomeFailed, failedStep(err), err)
		r.notify(ctx, logger, notifications.EventRunFailed, req, outcome, err)
		return nil, services.Wrap(services.ErrApply, "hook", "apply", "relocate torrent", err)
	}

	outcome.Moved = true
	logger.Info("torrent relocated",
		logging.String(logging.FieldCategory, string(match.Category)),
		logging.String("target_path", target),
		logging.String(logging.FieldOutcome, string(journal.OutcomeApplied)),
	)
	r.record(ctx, logger, req, outcome, journal.OutcomeApplied, "", nil)
	r.notify(ctx, logger, notifications.EventRunApplied, req, outcome, nil)

	return outcome, nil
}

func failedStep(err error) string {
	var stepErr *qbittorrent.StepError
	if errors.As(err, &stepErr) {
		return string(stepErr.Step)
	}
	return ""
}

// record writes the journal entry for a run that reached classification.
// Journal trouble never fails the run.
func (r *Runner) record(ctx context.Context, logger *slog.Logger, req Request, outcome *Outcome, result journal.Outcome, step string, cause error) {
	if r.journal == nil {
		return
	}
	entry := &journal.Entry{
		RunID:      outcome.RunID,
		Hash:       req.Hash,
		Name:       req.Name,
		Category:   string(outcome.Category),
		Label:      outcome.Label,
		Pattern:    outcome.Pattern,
		SourcePath: req.SavePath,
		TargetPath: outcome.TargetPath,
		Outcome:    result,
		FailedStep: step,
	}
	if cause != nil {
		entry.ErrorMessage = cause.Error()
	}
	if err := r.journal.Record(ctx, entry); err != nil {
		logger.Warn("journal record failed", logging.Error(err))
	}
}

// notify publishes the run outcome. Notification trouble never fails the run.
func (r *Runner) notify(ctx context.Context, logger *slog.Logger, event notifications.Event, req Request, outcome *Outcome, cause error) {
	if r.notifier == nil {
		return
	}
	payload := notifications.Payload{
		"name":     req.Name,
		"hash":     req.Hash,
		"category": string(outcome.Category),
		"label":    outcome.Label,
		"target":   outcome.TargetPath,
	}
	if cause != nil {
		payload["error"] = cause.Error()
	}
	if err := r.notifier.Publish(ctx, event, payload); err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}
}
