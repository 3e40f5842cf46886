package history

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"boildown/internal/logger"
	"boildown/internal/metrics"
	"boildown/internal/model"
	"boildown/internal/snowflake"
)

// User-facing labels and alerts.
const (
	SubmitLabel     = "Summarize"
	SubmittingLabel = "Summarizing..."
	ShowMoreLabel   = "Show more"
	ShowLessLabel   = "Show less"

	AlertSubmitFailed       = "Unable to generate summary. Please try again in a few moments."
	AlertHistoryDiscarded   = "Saved history could not be read and was discarded."
	AlertHistoryUnavailable = "Saved history could not be loaded."
	AlertClearFailed        = "Unable to clear history. Please try again."
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidMode   = errors.New("invalid summary mode")
)

// Summarizer produces a summary and never fails; see service.SummarizeService.
type Summarizer interface {
	Summarize(ctx context.Context, text string, mode model.SummaryType) string
}

// Options tunes a Controller. Zero values pick the defaults. NewID returns a
// unique entry id and its creation time in Unix milliseconds.
type Options struct {
	MaxCollapsedLines int
	MaxCollapsedChars int
	Metrics           *metrics.Metrics
	NewID             func() (string, int64)
	Now               func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxCollapsedLines <= 0 {
		o.MaxCollapsedLines = 4
	}
	if o.MaxCollapsedChars <= 0 {
		o.MaxCollapsedChars = 500
	}
	if o.NewID == nil {
		o.NewID = snowflake.Next
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// ViewState is a snapshot of everything the page renders.
type ViewState struct {
	Text        string            `json:"text"`
	Mode        model.SummaryType `json:"mode"`
	CanSubmit   bool              `json:"canSubmit"`
	Requesting  bool              `json:"requesting"`
	SubmitLabel string            `json:"submitLabel"`
	ShowClear   bool              `json:"showClear"`
	Alert       string            `json:"alert,omitempty"`
	Entries     []EntryView       `json:"entries"`
}

// EntryView is one history entry with its presentation flags.
type EntryView struct {
	model.SummaryEntry
	Expanded    bool   `json:"expanded"`
	Collapsible bool   `json:"collapsible"`
	ToggleLabel string `json:"toggleLabel,omitempty"`
	Latest      bool   `json:"latest"`
}

// Controller owns one client's history and view state.
type Controller struct {
	mu         sync.Mutex
	store      *Store
	summarizer Summarizer
	opts       Options

	text       string
	mode       model.SummaryType
	requesting bool
	expanded   map[string]bool
	alert      string
	lastUsed   time.Time
}

// NewController loads the persisted history. Load failures never surface as
// errors: the list starts empty and the next view carries an alert.
func NewController(ctx context.Context, storage Storage, summarizer Summarizer, opts Options) *Controller {
	c := &Controller{
		store:      NewStore(storage),
		summarizer: summarizer,
		opts:       opts.withDefaults(),
		mode:       model.SummaryTypeSentence,
		expanded:   make(map[string]bool),
	}
	c.lastUsed = c.opts.Now()

	if err := c.store.Load(ctx); err != nil {
		if errors.Is(err, ErrMalformedHistory) {
			logger.Warn("history discarded", "module", "history", "action", "load", "resource", "history", "result", "failed", "error", err)
			c.alert = AlertHistoryDiscarded
		} else {
			logger.Error("history load failed", "module", "history", "action", "load", "resource", "history", "result", "failed", "error", err)
			c.alert = AlertHistoryUnavailable
		}
	}
	return c
}

// View returns the current state and consumes any pending alert.
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()
	return c.viewLocked()
}

func (c *Controller) SetText(text string) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()
	c.text = text
	return c.viewLocked()
}

func (c *Controller) SetMode(mode model.SummaryType) (ViewState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()
	if !mode.Valid() {
		return c.viewLocked(), ErrInvalidMode
	}
	c.mode = mode
	return c.viewLocked(), nil
}

// Submit summarizes the current input and prepends the result. It is a no-op
// when the input is blank or another submit is in flight. The summary call
// ignores cancellation of ctx.
func (c *Controller) Submit(ctx context.Context) ViewState {
	c.mu.Lock()
	if c.requesting || strings.TrimSpace(c.text) == "" {
		view := c.viewLocked()
		c.mu.Unlock()
		return view
	}
	c.requesting = true
	text, mode := c.text, c.mode
	c.touchLocked()
	c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	summary := strings.TrimSpace(c.summarizer.Summarize(ctx, text, mode))

	id, ts := c.opts.NewID()
	entry := model.SummaryEntry{
		ID:           id,
		OriginalText: text,
		SummaryText:  summary,
		SummaryType:  mode,
		Timestamp:    ts,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.requesting = false
	c.touchLocked()

	if err := c.store.Prepend(ctx, entry); err != nil {
		c.opts.Metrics.IncPersistFailure()
		logger.Error("history save failed", "module", "history", "action", "save", "resource", "history", "result", "failed", "entry_id", entry.ID, "error", err)
		c.alert = AlertSubmitFailed
		return c.viewLocked()
	}

	logger.Debug("history entry added", "module", "history", "action", "create", "resource", "entry", "result", "ok", "entry_id", entry.ID, "mode", mode)
	c.text = ""
	return c.viewLocked()
}

// Clear erases the list, the persisted record and every expand flag. It is a
// no-op on an empty list.
func (c *Controller) Clear(ctx context.Context) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.store.Len() == 0 {
		return c.viewLocked()
	}
	if err := c.store.Clear(ctx); err != nil {
		c.opts.Metrics.IncPersistFailure()
		logger.Error("history clear failed", "module", "history", "action", "delete", "resource", "history", "result", "failed", "error", err)
		c.alert = AlertClearFailed
		return c.viewLocked()
	}
	clear(c.expanded)
	logger.Debug("history cleared", "module", "history", "action", "delete", "resource", "history", "result", "ok")
	return c.viewLocked()
}

// ToggleExpand flips the expanded flag of one entry.
func (c *Controller) ToggleExpand(id string) (ViewState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if !c.store.Contains(id) {
		return c.viewLocked(), ErrEntryNotFound
	}
	c.expanded[id] = !c.expanded[id]
	return c.viewLocked(), nil
}

// Collapsible reports whether text is long enough to get a show more/less toggle.
func (c *Controller) Collapsible(text string) bool {
	return strings.Count(text, "\n")+1 > c.opts.MaxCollapsedLines ||
		utf8.RuneCountInString(text) > c.opts.MaxCollapsedChars
}

// IdleFor reports whether the controller has no request in flight and has
// not been used for at least d.
func (c *Controller) IdleFor(d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.requesting && c.opts.Now().Sub(c.lastUsed) >= d
}

func (c *Controller) touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()
}

func (c *Controller) touchLocked() {
	c.lastUsed = c.opts.Now()
}

func (c *Controller) viewLocked() ViewState {
	entries := c.store.Entries()
	views := make([]EntryView, 0, len(entries))
	for i, e := range entries {
		v := EntryView{
			SummaryEntry: e,
			Expanded:     c.expanded[e.ID],
			Collapsible:  c.Collapsible(e.OriginalText),
			Latest:       i == 0,
		}
		if v.Collapsible {
			v.ToggleLabel = ShowMoreLabel
			if v.Expanded {
				v.ToggleLabel = ShowLessLabel
			}
		}
		views = append(views, v)
	}

	label := SubmitLabel
	if c.requesting {
		label = SubmittingLabel
	}

	alert := c.alert
	c.alert = ""

	return ViewState{
		Text:        c.text,
		Mode:        c.mode,
		CanSubmit:   !c.requesting && strings.TrimSpace(c.text) != "",
		Requesting:  c.requesting,
		SubmitLabel: label,
		ShowClear:   len(views) > 0,
		Alert:       alert,
		Entries:     views,
	}
}
