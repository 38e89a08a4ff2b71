package uploader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseCompleted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInFlight:
		return "in_flight"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the upload session state. Outcomes and Reason describe the last
// settled upload and are kept for display until the next submit.
type State struct {
	Phase    Phase
	Progress int
	Outcomes *domain.UploadResponse
	Reason   error
}

// Snapshot is everything a Renderer needs to project the session.
type Snapshot struct {
	Files     []*domain.FileHandle
	State     State
	CanSubmit bool
}

// Renderer is called with the controller lock held after every mutation, so
// calls are serialized and must not re-enter the Controller.
type Renderer interface {
	Render(s Snapshot)
	Advise(message string)
}

type Controller struct {
	log       *slog.Logger
	transport Transport
	renderer  Renderer
	refresher Refresher
	maxBytes  int64

	mu      sync.Mutex
	pending PendingFileSet
	state   State
	seq     uint64

	refreshes sync.WaitGroup
}

// NewController creates an idle session with an empty selection. refresher
// may be nil. maxBytes <= 0 disables the local size check.
func NewController(
	log *slog.Logger,
	transport Transport,
	renderer Renderer,
	refresher Refresher,
	maxBytes int64,
) *Controller {
	return &Controller{
		log:       log,
		transport: transport,
		renderer:  renderer,
		refresher: refresher,
		maxBytes:  maxBytes,
	}
}

// AddFiles appends already filtered candidates in order.
func (c *Controller) AddFiles(candidates ...*domain.FileHandle) {
	if len(candidates) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending.Add(candidates...)
	c.log.Debug("files added", slog.Int("added", len(candidates)), slog.Int("pending", c.pending.Len()))
	c.renderLocked()
}

// Select is the boundary used by every selection path: non-zip candidates
// are rejected with an advisory and the rest are added. It returns the
// rejected candidates.
func (c *Controller) Select(candidates ...*domain.FileHandle) []*domain.FileHandle {
	accepted, rejected := FilterZip(candidates)

	if len(rejected) > 0 {
		names := make([]string, 0, len(rejected))
		for _, r := range rejected {
			names = append(names, r.Name)
		}

		c.mu.Lock()
		c.renderer.Advise(fmt.Sprintf("only %s files are accepted, skipped: %s", acceptedExtension, strings.Join(names, ", ")))
		c.mu.Unlock()
	}

	c.AddFiles(accepted...)

	return rejected
}

func (c *Controller) RemoveFile(position int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.pending.Remove(position); err != nil {
		return err
	}

	c.renderLocked()

	return nil
}

func (c *Controller) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending.Clear()
	c.renderLocked()
}

// Submit uploads the whole selection in one request and blocks until the
// request settles. Calling it while another upload is in flight is a no-op.
// On success the selection is emptied and a listing refresh is started in
// the background; on failure the selection is left untouched for a retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()

	if c.state.Phase == PhaseInFlight {
		c.mu.Unlock()
		c.log.DebugContext(ctx, "upload already in flight, submit ignored")

		return nil
	}

	if err := c.validateLocked(); err != nil {
		c.renderer.Advise(err.Error())
		c.mu.Unlock()

		return err
	}

	files := c.pending.Files()
	c.seq++
	seq := c.seq
	c.state = State{Phase: PhaseInFlight}
	c.renderLocked()
	c.mu.Unlock()

	c.log.InfoContext(ctx, "upload started", slog.Int("files", len(files)))

	resp, err := c.transport.Upload(ctx, files, func(sent, total int64) {
		c.onProgress(seq, sent, total)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = State{Phase: PhaseFailed, Progress: c.state.Progress, Reason: err}
		c.renderLocked()
		c.renderer.Advise(fmt.Sprintf("upload failed: %v", err))
		c.toIdleLocked()

		c.log.ErrorContext(ctx, "upload failed", slog.String("err", err.Error()))

		return err
	}

	c.pending.Clear()
	c.state = State{Phase: PhaseCompleted, Progress: 100, Outcomes: resp}
	c.renderLocked()
	c.toIdleLocked()

	c.log.InfoContext(ctx, "upload completed",
		slog.Int("files", len(resp.Results)),
		slog.Int("succeeded", resp.Succeeded()),
	)

	if c.refresher != nil {
		c.refreshes.Add(1)
		go func() {
			defer c.refreshes.Done()
			c.refresher.Refresh(context.WithoutCancel(ctx))
		}()
	}

	return nil
}

// Wait blocks until background refreshes started by Submit return.
func (c *Controller) Wait() {
	c.refreshes.Wait()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Controller) Pending() []*domain.FileHandle {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pending.Files()
}

func (c *Controller) validateLocked() error {
	if c.pending.Len() == 0 {
		return &domain.ValidationError{Reason: "no files selected"}
	}

	if total := c.pending.TotalSize(); c.maxBytes > 0 && total > c.maxBytes {
		return &domain.ValidationError{
			Reason: fmt.Sprintf("selection is %d bytes, the upload limit is %d bytes", total, c.maxBytes),
		}
	}

	return nil
}

func (c *Controller) onProgress(seq uint64, sent, total int64) {
	if total <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// late events of a settled or superseded request
	if c.state.Phase != PhaseInFlight || seq != c.seq {
		return
	}

	p := Percent(sent, total)
	if p <= c.state.Progress {
		return
	}

	c.state.Progress = p
	c.renderLocked()
}

// toIdleLocked re-enables submission while keeping the settled result visible.
func (c *Controller) toIdleLocked() {
	c.state.Phase = PhaseIdle
	c.renderLocked()
}

func (c *Controller) renderLocked() {
	c.renderer.Render(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Files:     c.pending.Files(),
		State:     c.state,
		CanSubmit: c.state.Phase != PhaseInFlight,
	}
}
