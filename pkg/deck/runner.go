package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gradslides/pkg/buildinfo"
	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/honors"
	"github.com/matzehuels/gradslides/pkg/lookup"
	"github.com/matzehuels/gradslides/pkg/media"
	"github.com/matzehuels/gradslides/pkg/observability"
	"github.com/matzehuels/gradslides/pkg/partition"
	"github.com/matzehuels/gradslides/pkg/roster"
	"github.com/matzehuels/gradslides/pkg/slide"
)

// Runner executes the deck pipeline.
//
// The Runner holds no per-run state apart from the media cache, which is
// safe for concurrent use. Multiple goroutines can share a Runner.
type Runner struct {
	Logger *log.Logger
	Hooks  observability.PipelineHooks // nil uses the registered hooks
	Media  *media.Library
}

// NewRunner creates a runner. A nil logger discards log output; nil hooks
// defer to [observability.Pipeline] at run time.
func NewRunner(logger *log.Logger, hooks observability.PipelineHooks) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Logger: logger,
		Hooks:  hooks,
		Media:  media.NewLibrary(),
	}
}

// Result describes a finished run.
type Result struct {
	RunID    string                  `json:"run_id"`
	Decks    []DeckInfo              `json:"decks"`
	Tables   []TableResult           `json:"tables,omitempty"`
	Warnings []observability.Warning `json:"-"`
	Stats    Stats                   `json:"stats"`
	Duration time.Duration           `json:"duration"`
}

// DeckInfo describes one generated document and the files written for it.
type DeckInfo struct {
	Name    string   `json:"name"`
	Session string   `json:"session"`
	Kind    string   `json:"kind"`
	Program string   `json:"program,omitempty"`
	Side    string   `json:"side,omitempty"`
	Slides  int      `json:"slides"`
	Files   []string `json:"files"`
	Error   string   `json:"error,omitempty"` // set when the deck was skipped

	photos, employers int
}

// Failed reports whether the deck was skipped after an error.
func (i DeckInfo) Failed() bool { return i.Error != "" }

// job is one document to build.
type job struct {
	info     observability.PartitionInfo
	name     string
	stem     string
	records  []roster.Record
	composer *slide.Composer
}

// run carries the state shared by the jobs of one run.
type run struct {
	id     string
	start  time.Time
	hooks  observability.PipelineHooks
	logger *log.Logger

	mu       sync.Mutex
	warnings []observability.Warning
}

func (r *Runner) newRun() *run {
	hooks := r.Hooks
	if hooks == nil {
		hooks = observability.Pipeline()
	}
	return &run{
		id:     uuid.NewString(),
		start:  time.Now(),
		hooks:  hooks,
		logger: r.Logger,
	}
}

func (rn *run) warn(ctx context.Context, w observability.Warning) {
	rn.mu.Lock()
	rn.warnings = append(rn.warnings, w)
	rn.mu.Unlock()
	rn.logger.Warn(w.Message, "source", w.Source, "subject", w.Subject)
	rn.hooks.OnWarning(ctx, w)
}

func (rn *run) warnAll(ctx context.Context, ws []observability.Warning) {
	for _, w := range ws {
		rn.warn(ctx, w)
	}
}

// Run loads the input tables and the employer table, then generates every
// deck. In test mode no table is read and only the sample slide is made.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	rn := r.newRun()

	var (
		records   []roster.Record
		tables    []TableResult
		employers lookup.Employers
	)
	if !opts.TestMode {
		recs, results, ws, err := LoadInputs(opts.Inputs)
		rn.warnAll(ctx, ws)
		tables = results
		for _, t := range results {
			if t.Err == nil {
				r.Logger.Info("loaded table", "path", t.Path, "records", t.Records)
			} else {
				r.Logger.Error("table skipped", "path", t.Path, "error", t.Err)
			}
		}
		if err != nil {
			rn.hooks.OnRunComplete(ctx, rn.summary(nil), err)
			return nil, err
		}
		records = recs

		var ews []observability.Warning
		employers, ews = LoadEmployers(opts.Employers)
		rn.warnAll(ctx, ews)
		if employers.Len() > 0 {
			r.Logger.Info("loaded employers", "path", opts.Employers, "names", employers.Len())
		}
	}

	res, err := r.generate(ctx, rn, records, employers, opts)
	if res != nil {
		res.Tables = tables
	}
	return res, err
}

// Generate builds and saves the decks for records. Employers may be empty.
func (r *Runner) Generate(ctx context.Context, records []roster.Record, employers lookup.Employers, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return r.generate(ctx, r.newRun(), records, employers, opts)
}

func (r *Runner) generate(ctx context.Context, rn *run, records []roster.Record, employers lookup.Employers, opts Options) (*Result, error) {
	rn.hooks.OnRunStart(ctx, observability.RunInfo{RunID: rn.id, Records: len(records), TestMode: opts.TestMode})

	composer := &slide.Composer{
		Layout:    opts.Layout,
		Templates: opts.Templates,
		Media:     r.Media,
		Warn:      func(w observability.Warning) { rn.warn(ctx, w) },
	}

	var jobs []job
	if opts.TestMode {
		jobs = []job{testJob(composer, opts)}
		records = jobs[0].records
	} else {
		parts, ws := partition.Build(records, partition.Options{Structure: opts.Structure})
		rn.warnAll(ctx, ws)
		stems := make(map[string]string, len(parts))
		for _, p := range parts {
			stem, clash := uniqueStem(stems, opts.Stem(p), p.Name())
			if clash != "" {
				rn.warn(ctx, observability.Warning{
					Source:  "deck",
					Subject: p.Name(),
					Message: fmt.Sprintf("output name already used by %s, writing %s", clash, filepath.Base(stem)),
				})
			}
			jobs = append(jobs, job{
				info: observability.PartitionInfo{
					Session: opts.SessionFolder(p.Session),
					Kind:    string(p.Kind),
					Program: p.Program,
					Side:    p.Side,
					Records: p.Len(),
				},
				name:     p.Name(),
				stem:     stem,
				records:  p.Records,
				composer: composer,
			})
		}
	}

	if len(jobs) == 0 {
		err := errors.New(errors.ErrCodeNoData, "no records to render")
		rn.hooks.OnRunComplete(ctx, rn.summary(nil), err)
		return nil, err
	}

	r.Logger.Debug("partitioned records", "records", len(records), "decks", len(jobs), "jobs", opts.Jobs)

	finder := lookup.PhotoFinder{Dir: opts.PhotosDir, Pattern: opts.PhotoPattern}
	decks := make([]DeckInfo, len(jobs))

	var (
		failMu   sync.Mutex
		failed   int
		firstErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			info, err := r.build(gctx, rn, j, finder, employers, opts)
			if err != nil && gctx.Err() == nil {
				// A broken partition is skipped; the others are still written.
				info.Error = errors.UserMessage(err)
				failMu.Lock()
				failed++
				if firstErr == nil {
					firstErr = err
				}
				failMu.Unlock()
				rn.warn(gctx, observability.Warning{
					Source:  "deck",
					Subject: j.name,
					Message: "deck skipped: " + info.Error,
				})
				err = nil
			}
			decks[i] = info
			return err
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err == nil && failed == len(jobs) {
		code := errors.GetCode(firstErr)
		if code == "" {
			code = errors.ErrCodeRenderFailed
		}
		err = errors.Wrap(code, firstErr, "all %d decks failed", len(jobs))
	}

	res := &Result{
		RunID:    rn.id,
		Decks:    completed(decks),
		Warnings: rn.warnings,
		Stats:    stats(records, decks),
	}
	res.Duration = time.Since(rn.start)

	if err == nil {
		if werr := r.writeManifest(res, opts); werr != nil {
			err = werr
		}
	}

	rn.hooks.OnRunComplete(ctx, rn.summary(res), err)
	if err != nil {
		return res, err
	}
	r.Logger.Info("run complete", "decks", res.Stats.Decks, "skipped", res.Stats.Failed, "slides", res.Stats.Slides, "warnings", len(res.Warnings), "duration", res.Duration)
	return res, nil
}

func (rn *run) summary(res *Result) observability.RunSummary {
	s := observability.RunSummary{RunID: rn.id, Duration: time.Since(rn.start)}
	rn.mu.Lock()
	s.Warnings = len(rn.warnings)
	rn.mu.Unlock()
	if res != nil {
		s.Decks = res.Stats.Decks
		s.Slides = res.Stats.Slides
	}
	return s
}

// testJob renders the sample record alone, always on the cumlaude
// background.
func testJob(base *slide.Composer, opts Options) job {
	bg := opts.Templates[honors.TemplateCumlaude]
	c := *base
	c.Templates = map[honors.TemplateID]string{
		honors.TemplateNone:     bg,
		honors.TemplateCumlaude: bg,
		honors.TemplateSumma:    bg,
	}
	sample := opts.Sample
	if sample.StudentID == "" && sample.FullName == "" {
		sample = roster.Sample()
	}
	return job{
		info: observability.PartitionInfo{
			Session: TestFolder,
			Kind:    "test",
			Program: sample.Program,
			Records: 1,
		},
		name:     "test",
		stem:     opts.TestModeStem(),
		records:  []roster.Record{sample},
		composer: &c,
	}
}

// build composes one job's deck and saves it in every format.
func (r *Runner) build(ctx context.Context, rn *run, j job, finder lookup.PhotoFinder, employers lookup.Employers, opts Options) (DeckInfo, error) {
	info := DeckInfo{
		Name:    j.name,
		Session: j.info.Session,
		Kind:    j.info.Kind,
		Program: j.info.Program,
		Side:    j.info.Side,
	}
	rn.hooks.OnPartitionStart(ctx, j.info)

	w, h := j.composer.PageSize(j.records[0])
	d := slide.NewDeck(j.name, w, h)

	for i, rec := range j.records {
		if err := ctx.Err(); err != nil {
			return info, err
		}
		photo := finder.FindPhoto(rec.StudentID, rec.Program)
		employer := employers.Resolve(rec.FullName)
		if err := j.composer.Compose(d, rec, photo, employer); err != nil {
			return info, errors.Wrap(errors.ErrCodeRenderFailed, err, "%s", j.name)
		}
		if photo.IsSome() {
			info.photos++
		}
		if employer.IsSome() {
			info.employers++
		}
		rn.hooks.OnRecord(ctx, observability.RecordEvent{
			Partition: j.info,
			Index:     i + 1,
			StudentID: rec.StudentID,
			Name:      rec.FullName,
			Tier:      rec.Tier().String(),
			Photo:     photo.OrElse(""),
			Employer:  employer.OrElse(""),
		})
		r.Logger.Debug("composed slide", "deck", j.name, "index", i+1, "student", rec.Label(), "photo", photo.IsSome())
	}
	info.Slides = d.Len()

	for _, format := range opts.Formats {
		start := time.Now()
		files, size, err := r.save(ctx, d, j.stem, format, j.name, opts.Layout.DPI)
		if err != nil {
			return info, err
		}
		if len(files) == 0 {
			continue
		}
		info.Files = append(info.Files, files...)
		for _, f := range files {
			r.Logger.Info("saved", "path", f, "slides", d.Len())
		}
		rn.hooks.OnDeckSaved(ctx, observability.DeckEvent{
			Partition: j.info,
			Path:      files[0],
			Format:    format,
			Slides:    d.Len(),
			Bytes:     size,
			Duration:  time.Since(start),
		})
	}
	return info, nil
}

// completed drops the entries of jobs that never ran. Skipped decks are
// kept with their error.
func completed(decks []DeckInfo) []DeckInfo {
	out := make([]DeckInfo, 0, len(decks))
	for _, d := range decks {
		if d.Name != "" && (len(d.Files) > 0 || d.Failed()) {
			out = append(out, d)
		}
	}
	return out
}

func stats(records []roster.Record, decks []DeckInfo) Stats {
	s := Stats{Records: len(records), Honors: HonorsDistribution(records)}
	for _, d := range decks {
		if d.Failed() {
			s.Failed++
			continue
		}
		if len(d.Files) == 0 {
			continue
		}
		s.Decks++
		s.Slides += d.Slides
		s.Photos += d.photos
		s.Employers += d.employers
	}
	return s
}

// Manifest is the run record written to the output root.
type Manifest struct {
	RunID     string         `json:"run_id"`
	Generator buildinfo.Info `json:"generator"`
	Created   time.Time      `json:"created"`
	TestMode  bool           `json:"test_mode"`
	Structure string         `json:"structure"`
	Formats   []string       `json:"formats"`
	Decks     []DeckInfo     `json:"decks"`
	Stats     Stats          `json:"stats"`
	Warnings  []string       `json:"warnings,omitempty"`
}

func (r *Runner) writeManifest(res *Result, opts Options) error {
	m := Manifest{
		RunID:     res.RunID,
		Generator: buildinfo.Current(),
		Created:   time.Now().UTC().Truncate(time.Second),
		TestMode:  opts.TestMode,
		Structure: string(opts.Structure),
		Formats:   opts.Formats,
		Decks:     res.Decks,
		Stats:     res.Stats,
	}
	for _, w := range res.Warnings {
		m.Warnings = append(m.Warnings, w.String())
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	path := opts.ManifestPath()
	if err := writeFile(path, append(data, '\n')); err != nil {
		return err
	}
	r.Logger.Debug("wrote manifest", "path", path)
	return nil
}

// ReadManifest loads a manifest written by a previous run.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read manifest")
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse manifest %s", path)
	}
	return &m, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}

func (i DeckInfo) String() string {
	return fmt.Sprintf("%s (%d slides)", i.Name, i.Slides)
}
