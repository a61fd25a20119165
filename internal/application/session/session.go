// Package session owns the in-memory state of one usage exploration session:
// the most recently built report, the active filter and value mode, the
// derived facet sets, and the fan-out of the filtered view to subscribers.
package session

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/entity"
	"github.com/actionlens/gh-usage-dashboard-go/internal/domain/repository"
)

// Listener receives every published recomputation of the filtered view, in
// publish order.
type Listener func([]entity.ValuedLine)

// LoadResult is the outcome of a deferred report build.
type LoadResult struct {
	Report *entity.Report
	Err    error
}

// Session holds the current report and filter state. All methods are safe for
// concurrent use; loads are serialized so that the most recent completed build
// wins.
type Session struct {
	builder repository.ReportRepository
	logger  *zap.Logger

	loadMu sync.Mutex // serializes BuildReport calls

	mu        sync.Mutex
	report    *entity.Report
	filter    entity.Filter
	mode      entity.ValueMode
	facets    entity.Facets
	filtered  []entity.ValuedLine
	listeners map[int]Listener
	nextID    int
}

// New creates a session with no report loaded. A nil logger falls back to a
// no-op one.
func New(builder repository.ReportRepository, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		builder:   builder,
		logger:    logger,
		mode:      entity.ModeMinutes,
		listeners: map[int]Listener{},
	}
}

// Load builds a report from raw document text and, on success, atomically
// replaces the current report, resets the filter to the report's full date
// span with empty selectors, recomputes the facet sets and republishes the
// filtered view. On failure the prior report stays in place.
func (s *Session) Load(ctx context.Context, raw string) (*entity.Report, error) {
	// loadMu covers both the build and the install, so concurrent loads
	// take effect strictly in completion order.
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	report, err := s.builder.BuildReport(ctx, raw)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.report = report
	s.filter = entity.Filter{
		StartDate: report.StartDate,
		EndDate:   report.EndDate,
	}
	s.facets = deriveFacets(report.Lines)
	s.recomputeLocked()
	filtered, listeners := s.filtered, s.snapshotListenersLocked()
	s.mu.Unlock()

	s.logger.Debug("session loaded report",
		zap.Int("rows", len(report.Lines)),
		zap.String("format", string(report.FormatType)))

	publish(listeners, filtered)
	return report, nil
}

// LoadAsync runs Load without blocking the caller and delivers the outcome on
// the returned channel. The channel is buffered; the result may be discarded.
func (s *Session) LoadAsync(ctx context.Context, raw string) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		report, err := s.Load(ctx, raw)
		ch <- LoadResult{Report: report, Err: err}
	}()
	return ch
}

// Report returns the current report, or nil when none has been loaded.
func (s *Session) Report() *entity.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// Filter returns the active filter.
func (s *Session) Filter() entity.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// ValueMode returns the active value mode.
func (s *Session) ValueMode() entity.ValueMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Facets returns the distinct-value sets derived from the current report.
func (s *Session) Facets() entity.Facets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facets
}

// SetFilter merges a partial update into the active filter and triggers a
// full recomputation from the unfiltered base set.
func (s *Session) SetFilter(patch entity.FilterPatch) {
	s.mu.Lock()
	if patch.StartDate != nil {
		s.filter.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		s.filter.EndDate = *patch.EndDate
	}
	if patch.Workflow != nil {
		s.filter.Workflow = *patch.Workflow
	}
	if patch.SKU != nil {
		s.filter.SKU = *patch.SKU
	}
	s.recomputeLocked()
	filtered, listeners := s.filtered, s.snapshotListenersLocked()
	s.mu.Unlock()

	publish(listeners, filtered)
}

// SetValueMode switches between minutes and cost and triggers a full
// recomputation.
func (s *Session) SetValueMode(mode entity.ValueMode) {
	s.mu.Lock()
	s.mode = mode
	s.recomputeLocked()
	filtered, listeners := s.filtered, s.snapshotListenersLocked()
	s.mu.Unlock()

	publish(listeners, filtered)
}

// Subscribe registers a listener for every published recomputation of the
// filtered view. It returns an unsubscribe func. The listener immediately
// receives the current view.
func (s *Session) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.filtered
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// FilteredLines returns the most recently published filtered view.
func (s *Session) FilteredLines() []entity.ValuedLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtered
}

// DistinctWorkflows returns the ordered distinct workflows of the currently
// filtered lines whose product matches any of the given category tokens.
func (s *Session) DistinctWorkflows(categories ...string) []string {
	s.mu.Lock()
	filtered := s.filtered
	s.mu.Unlock()

	seen := map[string]bool{}
	workflows := []string{}
	for _, l := range filtered {
		if !entity.MatchProduct(l.UsageLine, categories...) {
			continue
		}
		wf := l.Workflow()
		if wf == "" || seen[wf] {
			continue
		}
		seen[wf] = true
		workflows = append(workflows, wf)
	}
	return workflows
}

// recomputeLocked rebuilds the filtered view from the base line set. Callers
// must hold s.mu.
func (s *Session) recomputeLocked() {
	if s.report == nil {
		s.filtered = nil
		return
	}
	s.filtered = Apply(s.report.Lines, s.filter, s.mode)
}

// snapshotListenersLocked returns the listeners in subscription order.
// Callers must hold s.mu.
func (s *Session) snapshotListenersLocked() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

func publish(listeners []Listener, lines []entity.ValuedLine) {
	for _, fn := range listeners {
		fn(lines)
	}
}

// deriveFacets walks all lines once and collects distinct values in
// first-seen order, so filter choices keep a stable ordering.
func deriveFacets(lines []entity.UsageLine) entity.Facets {
	var f entity.Facets
	owners := map[string]bool{}
	repos := map[string]bool{}
	workflows := map[string]bool{}
	skus := map[string]bool{}
	products := map[string]bool{}
	usernames := map[string]bool{}

	add := func(set map[string]bool, dst *[]string, v string) {
		if v == "" || set[v] {
			return
		}
		set[v] = true
		*dst = append(*dst, v)
	}

	for _, l := range lines {
		add(owners, &f.Owners, l.Organization)
		add(repos, &f.Repositories, l.RepositoryName)
		add(workflows, &f.Workflows, l.Workflow())
		add(skus, &f.SKUs, l.SKU)
		add(products, &f.Products, l.Product)
		add(usernames, &f.Usernames, l.Username)

		if l.Workflow() != "" {
			f.HasWorkflowData = true
		}
		if l.Username != "" {
			f.HasUsernameData = true
		}
	}
	return f
}
