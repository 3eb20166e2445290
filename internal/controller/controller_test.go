package controller

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/flashdeck/internal/backend"
	"github.com/nao1215/flashdeck/internal/dom"
	"github.com/nao1215/flashdeck/internal/model"
)

// fakeBackend records calls and answers from its fields.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	saves []model.SaveRequest
	pages [][2]int

	loginErr    error
	generate    string
	generateErr error
	records     []model.SavedRecord

	// gate, when set, blocks Generate until closed.
	gate chan struct{}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Signup(context.Context, model.Credentials) (model.MessageResponse, error) {
	f.record("signup")
	return model.MessageResponse{Message: "Signup successful!"}, nil
}

func (f *fakeBackend) Login(context.Context, model.Credentials) (model.MessageResponse, error) {
	f.record("login")
	if f.loginErr != nil {
		return model.MessageResponse{}, f.loginErr
	}
	return model.MessageResponse{Message: "Login successful!"}, nil
}

func (f *fakeBackend) Logout(context.Context) (model.MessageResponse, error) {
	f.record("logout")
	return model.MessageResponse{Message: "Logged out successfully!"}, nil
}

func (f *fakeBackend) Generate(ctx context.Context, _ model.GenerateRequest) (string, error) {
	f.record("generate")
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", &backend.TransportError{Op: backend.OpGenerate, Err: ctx.Err()}
		}
	}
	return f.generate, f.generateErr
}

func (f *fakeBackend) Save(_ context.Context, req model.SaveRequest) (model.MessageResponse, error) {
	f.record("save")
	f.mu.Lock()
	f.saves = append(f.saves, req)
	f.mu.Unlock()
	return model.MessageResponse{Message: "Flashcards saved successfully!"}, nil
}

func (f *fakeBackend) ListFlashcards(_ context.Context, page, limit int) ([]model.SavedRecord, error) {
	f.record("flashcards")
	f.mu.Lock()
	f.pages = append(f.pages, [2]int{page, limit})
	f.mu.Unlock()
	return f.records, nil
}

// alerts collects alert messages.
type alerts struct {
	mu   sync.Mutex
	msgs []string
}

func (a *alerts) Alert(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.msgs = append(a.msgs, msg)
}

func (a *alerts) All() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.msgs...)
}

// startController runs a controller for the duration of the test.
func startController(t *testing.T, b Backend, opts Options) (*Controller, *alerts) {
	t.Helper()

	a := &alerts{}
	opts.Alerter = a
	c := New(b, dom.NewPage(), opts)

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Run returned %v", err)
		}
	})
	return c, a
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// login types credentials into the login form and submits it.
func login(t *testing.T, ctx context.Context, c *Controller) {
	t.Helper()
	for id, v := range map[string]string{dom.IDLoginUsername: "alice", dom.IDLoginPassword: "pw"} {
		if err := c.Input(ctx, id, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Submit(ctx, dom.IDLoginForm); err != nil {
		t.Fatalf("submit login: %v", err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestControllerInitialPage(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	c, _ := startController(t, fb, Options{})
	ctx := waitCtx(t)

	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}
	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if s.Session != model.LoggedOut {
		t.Errorf("session = %v", s.Session)
	}
	if !s.Visible(dom.IDSignupForm) || !s.Visible(dom.IDLoginForm) {
		t.Error("auth forms should be visible")
	}
	if s.Visible(dom.IDFlashcardForm) || s.Visible(dom.IDLogoutButton) {
		t.Error("flashcard form and logout should be hidden")
	}
	if len(fb.Calls()) != 0 {
		t.Errorf("no request expected on a logged-out page load, got %v", fb.Calls())
	}
}

func TestControllerLoginLoadsSavedOnce(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{records: []model.SavedRecord{{Topic: "Go", Flashcards: "Q1\nQ2"}}}
	c, a := startController(t, fb, Options{PageSize: 20})
	ctx := waitCtx(t)

	login(t, ctx, c)

	if got := fb.count("flashcards"); got != 1 {
		t.Errorf("expected exactly one listing request, got %d", got)
	}
	fb.mu.Lock()
	pages := fb.pages
	fb.mu.Unlock()
	if !reflect.DeepEqual(pages, [][2]int{{1, 20}}) {
		t.Errorf("pages = %v", pages)
	}

	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Session != model.LoggedIn {
		t.Errorf("session = %v", s.Session)
	}
	if !s.Visible(dom.IDFlashcardForm) || !s.Visible(dom.IDLogoutButton) || s.Visible(dom.IDLoginForm) {
		t.Error("visibility does not match logged-in state")
	}
	if !reflect.DeepEqual(s.Saved, fb.records) {
		t.Errorf("saved = %#v", s.Saved)
	}
	if got := a.All(); !reflect.DeepEqual(got, []string{"Login successful!"}) {
		t.Errorf("alerts = %v", got)
	}
}

func TestControllerLoginFailure(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{loginErr: &backend.AppError{Op: backend.OpLogin, Status: 400, Reason: "Invalid credentials"}}
	c, a := startController(t, fb, Options{})
	ctx := waitCtx(t)

	login(t, ctx, c)

	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Session != model.LoggedOut {
		t.Errorf("session = %v", s.Session)
	}
	if fb.count("flashcards") != 0 {
		t.Error("failed login must not load saved flashcards")
	}
	if got := a.All(); !reflect.DeepEqual(got, []string{"Invalid credentials"}) {
		t.Errorf("alerts = %v", got)
	}
}

func TestControllerGenerateAndSave(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{generate: "Q1\nQ2\nQ3"}
	c, a := startController(t, fb, Options{})
	ctx := waitCtx(t)

	login(t, ctx, c)

	if err := c.Input(ctx, dom.IDTopic, "Go"); err != nil {
		t.Fatal(err)
	}
	if err := c.Submit(ctx, dom.IDFlashcardForm); err != nil {
		t.Fatal(err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}

	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Flashcards, []string{"Q1", "Q2", "Q3"}) {
		t.Errorf("flashcards = %q", s.Flashcards)
	}
	if !s.CanSave || s.Topic != "Go" {
		t.Errorf("can save = %v, topic = %q", s.CanSave, s.Topic)
	}

	if err := c.Click(ctx, dom.ClassSaveButton); err != nil {
		t.Fatal(err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}

	fb.mu.Lock()
	saves := fb.saves
	fb.mu.Unlock()
	want := []model.SaveRequest{{Topic: "Go", Flashcards: "Q1\nQ2\nQ3"}}
	if !reflect.DeepEqual(saves, want) {
		t.Errorf("saves = %#v, want %#v", saves, want)
	}
	alertsGot := a.All()
	if alertsGot[len(alertsGot)-1] != "Flashcards saved successfully!" {
		t.Errorf("alerts = %v", alertsGot)
	}
}

func TestControllerGenerateError(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{generateErr: &backend.AppError{Op: backend.OpGenerate, Status: 400, Reason: "Invalid topic"}}
	c, _ := startController(t, fb, Options{})
	ctx := waitCtx(t)

	login(t, ctx, c)
	if err := c.Input(ctx, dom.IDTopic, "??"); err != nil {
		t.Fatal(err)
	}
	if err := c.Submit(ctx, dom.IDFlashcardForm); err != nil {
		t.Fatal(err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}

	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.CardsState != ViewError || s.CardsText != "Invalid topic" || len(s.Flashcards) != 0 || s.CanSave {
		t.Errorf("unexpected snapshot %+v", s)
	}
	if err := c.Click(ctx, dom.ClassSaveButton); !errors.Is(err, dom.ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}

func TestControllerPlaceholderWhileGenerating(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{generate: "Q1", gate: make(chan struct{})}
	c, _ := startController(t, fb, Options{})
	ctx := waitCtx(t)

	login(t, ctx, c)
	if err := c.Input(ctx, dom.IDTopic, "Go"); err != nil {
		t.Fatal(err)
	}
	if err := c.Submit(ctx, dom.IDFlashcardForm); err != nil {
		t.Fatal(err)
	}

	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.CardsState != ViewLoading || s.CardsText != GeneratingText {
		t.Errorf("state = %v, text = %q", s.CardsState, s.CardsText)
	}

	close(fb.gate)
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}
	s, err = c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.CardsState != ViewReady {
		t.Errorf("state = %v after release", s.CardsState)
	}
}

func TestControllerLogout(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{records: []model.SavedRecord{{Topic: "Go", Flashcards: "Q1"}}}
	c, a := startController(t, fb, Options{})
	ctx := waitCtx(t)

	login(t, ctx, c)
	if err := c.Click(ctx, dom.IDLogoutButton); err != nil {
		t.Fatal(err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}

	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Session != model.LoggedOut {
		t.Errorf("session = %v", s.Session)
	}
	if len(s.Saved) != 0 || s.SavedState != ViewEmpty {
		t.Errorf("saved list not emptied: %+v", s.Saved)
	}
	if got := a.All(); got[len(got)-1] != "Logged out successfully!" {
		t.Errorf("alerts = %v", got)
	}

	if err := c.Click(ctx, dom.IDLogoutButton); !errors.Is(err, ErrHidden) {
		t.Errorf("expected ErrHidden for hidden logout control, got %v", err)
	}
}

func TestControllerHiddenFormIsRejected(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	c, _ := startController(t, fb, Options{})
	ctx := waitCtx(t)

	if err := c.Input(ctx, dom.IDTopic, "Go"); err != nil {
		t.Fatal(err)
	}
	if err := c.Submit(ctx, dom.IDFlashcardForm); !errors.Is(err, ErrHidden) {
		t.Errorf("expected ErrHidden, got %v", err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}
	if len(fb.Calls()) != 0 {
		t.Errorf("unexpected calls %v", fb.Calls())
	}
}

func TestControllerEmptyFieldBlocksRequest(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	c, a := startController(t, fb, Options{})
	ctx := waitCtx(t)

	if err := c.Input(ctx, dom.IDSignupUsername, "alice"); err != nil {
		t.Fatal(err)
	}
	if err := c.Submit(ctx, dom.IDSignupForm); err != nil {
		t.Fatal(err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}

	if len(fb.Calls()) != 0 {
		t.Errorf("unexpected calls %v", fb.Calls())
	}
	if len(a.All()) != 0 {
		t.Errorf("unexpected alerts %v", a.All())
	}
	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Invalid, []string{"password"}) {
		t.Errorf("invalid = %v", s.Invalid)
	}
}

func TestControllerSignup(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	c, a := startController(t, fb, Options{})
	ctx := waitCtx(t)

	if err := c.Input(ctx, dom.IDSignupUsername, "alice"); err != nil {
		t.Fatal(err)
	}
	if err := c.Input(ctx, dom.IDSignupPassword, "pw"); err != nil {
		t.Fatal(err)
	}
	if err := c.Submit(ctx, dom.IDSignupForm); err != nil {
		t.Fatal(err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}

	if got := a.All(); !reflect.DeepEqual(got, []string{"Signup successful!"}) {
		t.Errorf("alerts = %v", got)
	}
	s, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Session != model.LoggedOut {
		t.Error("signup must not log in")
	}
}

func TestControllerDispatch(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	c, a := startController(t, fb, Options{})
	ctx := waitCtx(t)

	if err := c.Dispatch(ctx, SignupSubmitted{Credentials: model.Credentials{Username: "a", Password: "b"}}); err != nil {
		t.Fatal(err)
	}
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatal(err)
	}
	if got := a.All(); len(got) != 1 {
		t.Errorf("alerts = %v", got)
	}
}

func TestControllerStopped(t *testing.T) {
	t.Parallel()

	c := New(&fakeBackend{}, dom.NewPage(), Options{})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if err := c.WaitIdle(t.Context()); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}
