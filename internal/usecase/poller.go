package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"ArticleIngest/internal/domain"
	"ArticleIngest/internal/ports"
)

// PollerDeps wires the poll loop's collaborators.
type PollerDeps struct {
	Transport ports.Transport
	Processor ports.Processor
	Recorder  ports.Recorder
	Scheduler ports.Scheduler
	BaseURL   string
	Out       io.Writer
	// SerializeBatches makes each poll cycle wait for its batch to finish
	// before returning to the scheduler. Off by default: the timer keeps
	// counting while a batch is still in flight.
	SerializeBatches bool
	Logger           *slog.Logger
}

// Poller re-fetches the catalog on a fixed cadence, diffs it against the set
// of descriptors already seen, and hands only the new subset to the
// processor. The known set grows monotonically for the life of the process;
// a failed catalog fetch counts as "no update" for that cycle, never as a
// fatal condition.
type Poller struct {
	transport ports.Transport
	processor ports.Processor
	recorder  ports.Recorder
	scheduler ports.Scheduler
	baseURL   string
	out       io.Writer
	serialize bool
	logger    *slog.Logger

	mu    sync.Mutex
	known map[string]struct{}
}

// NewPoller builds a poller with an empty known-descriptor set.
func NewPoller(deps PollerDeps) *Poller {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	return &Poller{
		transport: deps.Transport,
		processor: deps.Processor,
		recorder:  deps.Recorder,
		scheduler: deps.Scheduler,
		baseURL:   strings.TrimSuffix(deps.BaseURL, "/"),
		out:       out,
		serialize: deps.SerializeBatches,
		logger:    deps.Logger,
		known:     make(map[string]struct{}),
	}
}

// CatalogURL derives the descriptor-list endpoint.
func (p *Poller) CatalogURL() string {
	return fmt.Sprintf("%s/data/list.json", p.baseURL)
}

// Bootstrap runs one full catalog pass synchronously and displays the
// results. Failing to fetch the catalog here is the only unrecoverable
// condition in the pipeline and is returned as a startup error.
func (p *Poller) Bootstrap(ctx context.Context) error {
	descriptors, ok := p.fetchCatalog(ctx)
	if !ok {
		return fmt.Errorf("initial catalog fetch failed: %s", p.CatalogURL())
	}

	p.remember(descriptors)
	p.processor.Process(ctx, descriptors)
	p.recorder.Display(p.out)
	return nil
}

// Start registers the poll cycle with the scheduler.
func (p *Poller) Start(ctx context.Context) error {
	if p.scheduler == nil {
		return nil
	}
	return p.scheduler.Start(ctx, func(time.Time) {
		p.poll(ctx)
	})
}

// Stop halts the scheduler; an in-flight batch finishes on its own.
func (p *Poller) Stop(ctx context.Context) error {
	if p.scheduler == nil {
		return nil
	}
	return p.scheduler.Stop(ctx)
}

// poll runs one cycle: fetch, diff, conditionally process, display.
func (p *Poller) poll(ctx context.Context) {
	p.info("checking for updates")

	latest, ok := p.fetchCatalog(ctx)
	if !ok {
		p.info("no update", "reason", "catalog fetch failed")
		return
	}

	fresh := p.remember(latest)
	if len(fresh) == 0 {
		p.info("no update")
		return
	}

	p.info("updates found", "new", len(fresh))
	run := func() {
		p.processor.Process(ctx, fresh)
		p.recorder.Display(p.out)
	}
	if p.serialize {
		run()
		return
	}
	go run()
}

// remember unions descriptors into the known set and returns, in catalog
// order, exactly the subset that was not known before.
func (p *Poller) remember(descriptors []domain.Descriptor) []domain.Descriptor {
	p.mu.Lock()
	defer p.mu.Unlock()

	var fresh []domain.Descriptor
	for _, d := range descriptors {
		if _, seen := p.known[d.ID]; seen {
			continue
		}
		p.known[d.ID] = struct{}{}
		fresh = append(fresh, d)
	}
	return fresh
}

// KnownIDs reports the ids processed so far.
func (p *Poller) KnownIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.known))
	for id := range p.known {
		ids = append(ids, id)
	}
	return ids
}

func (p *Poller) fetchCatalog(ctx context.Context) ([]domain.Descriptor, bool) {
	var list []any
	if !p.transport.FetchJSON(ctx, p.CatalogURL(), &list) {
		return nil, false
	}

	descriptors := make([]domain.Descriptor, 0, len(list))
	for _, item := range list {
		d, ok := domain.DescriptorFromValue(item)
		if !ok {
			p.debug("discarding catalog entry without id", "entry", item)
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, true
}

func (p *Poller) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
