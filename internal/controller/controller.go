package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/flashdeck/internal/dom"
	"github.com/nao1215/flashdeck/internal/log"
	"github.com/nao1215/flashdeck/internal/model"
)

// inboxSize is the capacity of the loop's message queue.
const inboxSize = 64

// ErrStopped is returned by methods called after Run has returned.
var ErrStopped = errors.New("controller stopped")

// ErrHidden is returned when an interaction targets a hidden control.
var ErrHidden = errors.New("control is not visible")

// Alerter shows modal messages. Alert is called on the loop goroutine and
// must not call back into the Controller.
type Alerter interface {
	Alert(message string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(message string)

// Alert calls f(message).
func (f AlerterFunc) Alert(message string) {
	f(message)
}

// Options configures a Controller.
type Options struct {
	// PageSize is the number of saved flashcards requested per listing.
	// Zero leaves pagination to the server.
	PageSize int

	// Alerter receives alert messages. Alerts are dropped when nil.
	Alerter Alerter

	// Logger receives debug logs for each event.
	Logger *slog.Logger
}

// Controller owns a page and its model. One goroutine, started by Run,
// applies events, renders, and shows alerts; each request runs on its own
// goroutine and reports back through the same queue.
type Controller struct {
	backend  Backend
	doc      *dom.Document
	model    Model
	pageSize int
	alerter  Alerter
	logger   *slog.Logger

	inbox chan any
	done  chan struct{}

	// Owned by the loop goroutine.
	inflight int
	waiters  []chan struct{}
}

// interaction messages are resolved against the page before they become
// events, the way a browser only delivers events to controls that exist
// and are shown.
type (
	inputMsg struct {
		id, value string
		reply     chan error
	}
	submitMsg struct {
		form  string
		reply chan error
	}
	clickMsg struct {
		target string
		reply  chan error
	}
	eventMsg struct {
		ev Event
	}
	resultMsg struct {
		ev Event
	}
	idleMsg struct {
		reply chan struct{}
	}
	snapshotMsg struct {
		reply chan Snapshot
	}
)

// New creates a Controller for doc. The page is rendered for the initial
// logged-out model when Run starts.
func New(b Backend, doc *dom.Document, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Controller{
		backend:  b,
		doc:      doc,
		model:    NewModel(),
		pageSize: opts.PageSize,
		alerter:  opts.Alerter,
		logger:   logger,
		inbox:    make(chan any, inboxSize),
		done:     make(chan struct{}),
	}
}

// Run renders the initial page, dispatches PageLoaded, and processes
// messages until ctx is cancelled. In-flight requests are cancelled with
// ctx and Run waits for them before returning.
func (c *Controller) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(c.done)
		return c.loop(gctx, g)
	})

	err := g.Wait()
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

// loop is the only code that touches c.model and c.doc.
func (c *Controller) loop(ctx context.Context, g *errgroup.Group) error {
	if err := Render(c.model, c.doc); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	if err := c.apply(ctx, g, PageLoaded{}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			for _, w := range c.waiters {
				close(w)
			}
			c.waiters = nil
			return ctx.Err()

		case msg := <-c.inbox:
			if err := c.handle(ctx, g, msg); err != nil {
				return err
			}
		}
	}
}

// handle processes one message.
func (c *Controller) handle(ctx context.Context, g *errgroup.Group, msg any) error {
	switch m := msg.(type) {
	case eventMsg:
		return c.apply(ctx, g, m.ev)

	case resultMsg:
		err := c.apply(ctx, g, m.ev)
		c.inflight--
		c.releaseWaiters()
		return err

	case inputMsg:
		m.reply <- c.doc.SetValue(m.id, m.value)

	case submitMsg:
		ev, err := c.submit(m.form)
		m.reply <- err
		if err == nil {
			return c.apply(ctx, g, ev)
		}

	case clickMsg:
		ev, err := c.click(m.target)
		m.reply <- err
		if err == nil {
			return c.apply(ctx, g, ev)
		}

	case idleMsg:
		if c.inflight == 0 {
			close(m.reply)
		} else {
			c.waiters = append(c.waiters, m.reply)
		}

	case snapshotMsg:
		m.reply <- TakeSnapshot(c.model, c.doc)
	}
	return nil
}

// apply runs ev through Update, renders the result, and performs the
// effects in order.
func (c *Controller) apply(ctx context.Context, g *errgroup.Group, ev Event) error {
	prev := c.model.Session
	next, effects := Update(c.model, ev)
	c.model = next

	c.logger.Debug("event applied",
		"event", fmt.Sprintf("%T", ev),
		"session", c.model.Session.String(),
		"effects", len(effects),
	)
	if prev != next.Session {
		c.logger.Info("session changed", "from", prev.String(), "to", next.Session.String())
	}

	if err := Render(c.model, c.doc); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	for _, eff := range effects {
		switch e := eff.(type) {
		case AlertEffect:
			if c.alerter != nil {
				c.alerter.Alert(e.Message)
			}
		case RequestEffect:
			c.start(ctx, g, e)
		}
	}
	return nil
}

// start performs r on a new goroutine and posts its result to the loop.
func (c *Controller) start(ctx context.Context, g *errgroup.Group, r RequestEffect) {
	c.inflight++
	c.logger.Debug("request started", "request", r.Kind.String())

	g.Go(func() error {
		ev := perform(ctx, c.backend, c.pageSize, r)
		if ev == nil {
			return fmt.Errorf("unknown request kind %d", r.Kind)
		}
		select {
		case c.inbox <- resultMsg{ev: ev}:
		case <-ctx.Done():
		}
		return nil
	})
}

func (c *Controller) releaseWaiters() {
	if c.inflight > 0 {
		return
	}
	for _, w := range c.waiters {
		close(w)
	}
	c.waiters = nil
}

// submit turns a submit of form into its event, reading the current input
// values. Hidden forms cannot be submitted.
func (c *Controller) submit(form string) (Event, error) {
	if !c.doc.IsVisible(form) {
		return nil, fmt.Errorf("%w: #%s", ErrHidden, form)
	}
	values, err := c.doc.FormValues(form)
	if err != nil {
		return nil, err
	}

	creds := model.Credentials{Username: values["username"], Password: values["password"]}
	switch form {
	case dom.IDSignupForm:
		return SignupSubmitted{Credentials: creds}, nil
	case dom.IDLoginForm:
		return LoginSubmitted{Credentials: creds}, nil
	case dom.IDFlashcardForm:
		return GenerateSubmitted{Topic: values["topic"]}, nil
	default:
		return nil, fmt.Errorf("%w: form #%s", dom.ErrElementNotFound, form)
	}
}

// click turns a click on the logout control (by id) or the save control
// (by class) into its event.
func (c *Controller) click(target string) (Event, error) {
	switch target {
	case dom.IDLogoutButton:
		if !c.doc.IsVisible(dom.IDLogoutButton) {
			return nil, fmt.Errorf("%w: #%s", ErrHidden, target)
		}
		return LogoutClicked{}, nil
	case dom.ClassSaveButton:
		if len(c.doc.ByClass(dom.IDCardsContainer, dom.ClassSaveButton)) == 0 {
			return nil, fmt.Errorf("%w: .%s", dom.ErrElementNotFound, target)
		}
		return SaveClicked{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", dom.ErrElementNotFound, target)
	}
}

// send queues msg for the loop.
func (c *Controller) send(ctx context.Context, msg any) error {
	select {
	case c.inbox <- msg:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// call queues msg and waits for its reply.
func call[T any](ctx context.Context, c *Controller, msg any, reply chan T) (T, error) {
	var zero T
	if err := c.send(ctx, msg); err != nil {
		return zero, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-c.done:
		return zero, ErrStopped
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Dispatch queues ev for the loop without waiting for it to be applied.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	return c.send(ctx, eventMsg{ev: ev})
}

// Input sets the value of the input with id, as typing into it would.
func (c *Controller) Input(ctx context.Context, id, value string) error {
	reply := make(chan error, 1)
	err, callErr := call(ctx, c, inputMsg{id: id, value: value, reply: reply}, reply)
	if callErr != nil {
		return callErr
	}
	return err
}

// Submit submits the form with id using its current input values.
// It returns ErrHidden if the form is not shown.
func (c *Controller) Submit(ctx context.Context, form string) error {
	reply := make(chan error, 1)
	err, callErr := call(ctx, c, submitMsg{form: form, reply: reply}, reply)
	if callErr != nil {
		return callErr
	}
	return err
}

// Click clicks the logout control (dom.IDLogoutButton) or the save control
// (dom.ClassSaveButton).
func (c *Controller) Click(ctx context.Context, target string) error {
	reply := make(chan error, 1)
	err, callErr := call(ctx, c, clickMsg{target: target, reply: reply}, reply)
	if callErr != nil {
		return callErr
	}
	return err
}

// WaitIdle blocks until every message queued before it has been applied
// and no request is in flight, including follow-up requests started by
// results.
func (c *Controller) WaitIdle(ctx context.Context) error {
	reply := make(chan struct{})
	if err := c.send(ctx, idleMsg{reply: reply}); err != nil {
		return err
	}
	select {
	case <-reply:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a read-only view of the page.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	return call(ctx, c, snapshotMsg{reply: reply}, reply)
}
