package cli

import (
	"context"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gradslides/pkg/observability"
)

// consoleHooks prints pipeline progress. Partitions may be built in
// parallel, so output is serialised.
type consoleHooks struct {
	logger *log.Logger

	mu sync.Mutex
}

func newConsoleHooks(logger *log.Logger) *consoleHooks {
	return &consoleHooks{logger: logger}
}

func (h *consoleHooks) OnRunStart(_ context.Context, info observability.RunInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if info.TestMode {
		printInfo("Test mode: rendering the sample slide only")
		return
	}
	printInfo("Generating slides for %s graduates", StyleNumber.Render(strconv.Itoa(info.Records)))
	h.logger.Debug("run started", "id", info.RunID)
}

func (h *consoleHooks) OnPartitionStart(_ context.Context, p observability.PartitionInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger.Debug("building deck", "session", p.Session, "kind", p.Kind, "program", p.Program, "side", p.Side, "records", p.Records)
}

func (h *consoleHooks) OnRecord(_ context.Context, ev observability.RecordEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger.Debug("slide", "n", ev.Index, "name", ev.Name, "nim", ev.StudentID, "tier", ev.Tier, "photo", ev.PhotoFound())
}

func (h *consoleHooks) OnDeckSaved(_ context.Context, ev observability.DeckEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	printFile(ev.Path)
	h.logger.Debug("saved", "format", ev.Format, "slides", ev.Slides, "bytes", ev.Bytes, "took", ev.Duration)
}

func (h *consoleHooks) OnWarning(_ context.Context, w observability.Warning) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger.Warn(w.Message, "source", w.Source, "subject", w.Subject)
}

func (h *consoleHooks) OnRunComplete(_ context.Context, s observability.RunSummary, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		return
	}
	printSuccess("Wrote %d decks with %d slides", s.Decks, s.Slides)
	if s.Warnings > 0 {
		printWarning("%d warnings", s.Warnings)
	}
}
