// Package observability provides the event stream emitted while decks are
// generated.
//
// The pipeline never prints. Instead it reports one event per run, per
// partition, per processed student and per saved document to a
// [PipelineHooks] implementation. The CLI registers a console printer;
// tests register a recorder; anything else (a log file, a UI) can do the
// same without the pipeline knowing about it.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&consoleHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnRecord(ctx, observability.RecordEvent{...})
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Events
// =============================================================================

// RunInfo describes a run at its start.
type RunInfo struct {
	RunID    string
	Records  int
	TestMode bool
}

// PartitionInfo describes one output document about to be built.
type PartitionInfo struct {
	Session string // session folder label, e.g. "Wisuda Pagi"
	Kind    string // "summa", "program" or "test"
	Program string
	Side    string
	Records int
}

// RecordEvent is emitted once for every student placed on a slide.
type RecordEvent struct {
	Partition PartitionInfo
	Index     int // 1-based position within the partition
	StudentID string
	Name      string
	Tier      string
	Photo     string // resolved photo path, empty when absent
	Employer  string // resolved employer, empty when absent
}

// PhotoFound reports whether a photo was placed.
func (e RecordEvent) PhotoFound() bool { return e.Photo != "" }

// DeckEvent is emitted after a document has been written.
type DeckEvent struct {
	Partition PartitionInfo
	Path      string
	Format    string
	Slides    int
	Bytes     int
	Duration  time.Duration
}

// Warning is a recoverable condition: a malformed field, a missing column,
// an unreadable photo. Processing continues after a warning.
type Warning struct {
	Source  string // component that raised it, e.g. "roster", "partition"
	Subject string // file, student or column the warning is about
	Message string
}

func (w Warning) String() string {
	if w.Subject == "" {
		return w.Source + ": " + w.Message
	}
	return w.Source + ": " + w.Subject + ": " + w.Message
}

// RunSummary is emitted when a run finishes, successfully or not.
type RunSummary struct {
	RunID    string
	Decks    int
	Slides   int
	Warnings int
	Duration time.Duration
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the deck pipeline.
type PipelineHooks interface {
	OnRunStart(ctx context.Context, info RunInfo)
	OnPartitionStart(ctx context.Context, p PartitionInfo)
	OnRecord(ctx context.Context, ev RecordEvent)
	OnDeckSaved(ctx context.Context, ev DeckEvent)
	OnWarning(ctx context.Context, w Warning)
	OnRunComplete(ctx context.Context, summary RunSummary, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, RunInfo)               {}
func (NoopPipelineHooks) OnPartitionStart(context.Context, PartitionInfo)   {}
func (NoopPipelineHooks) OnRecord(context.Context, RecordEvent)             {}
func (NoopPipelineHooks) OnDeckSaved(context.Context, DeckEvent)            {}
func (NoopPipelineHooks) OnWarning(context.Context, Warning)                {}
func (NoopPipelineHooks) OnRunComplete(context.Context, RunSummary, error) {}

// =============================================================================
// Recorder
// =============================================================================

// Recorder keeps every event in memory. It is safe for concurrent use and
// is mainly useful in tests and for building run reports.
type Recorder struct {
	mu         sync.Mutex
	Runs       []RunInfo
	Partitions []PartitionInfo
	Records    []RecordEvent
	Decks      []DeckEvent
	Warnings   []Warning
	Summaries  []RunSummary
	Errors     []error
}

func (r *Recorder) OnRunStart(_ context.Context, info RunInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Runs = append(r.Runs, info)
}

func (r *Recorder) OnPartitionStart(_ context.Context, p PartitionInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Partitions = append(r.Partitions, p)
}

func (r *Recorder) OnRecord(_ context.Context, ev RecordEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = append(r.Records, ev)
}

func (r *Recorder) OnDeckSaved(_ context.Context, ev DeckEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Decks = append(r.Decks, ev)
}

func (r *Recorder) OnWarning(_ context.Context, w Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, w)
}

func (r *Recorder) OnRunComplete(_ context.Context, s RunSummary, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Summaries = append(r.Summaries, s)
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}

// =============================================================================
// Fan-out
// =============================================================================

// Multi forwards every event to each of hooks in order.
type Multi []PipelineHooks

func (m Multi) OnRunStart(ctx context.Context, info RunInfo) {
	for _, h := range m {
		h.OnRunStart(ctx, info)
	}
}

func (m Multi) OnPartitionStart(ctx context.Context, p PartitionInfo) {
	for _, h := range m {
		h.OnPartitionStart(ctx, p)
	}
}

func (m Multi) OnRecord(ctx context.Context, ev RecordEvent) {
	for _, h := range m {
		h.OnRecord(ctx, ev)
	}
}

func (m Multi) OnDeckSaved(ctx context.Context, ev DeckEvent) {
	for _, h := range m {
		h.OnDeckSaved(ctx, ev)
	}
}

func (m Multi) OnWarning(ctx context.Context, w Warning) {
	for _, h := range m {
		h.OnWarning(ctx, w)
	}
}

func (m Multi) OnRunComplete(ctx context.Context, s RunSummary, err error) {
	for _, h := range m {
		h.OnRunComplete(ctx, s, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
