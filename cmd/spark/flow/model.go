// Package flow is the CareerSpark guidance journey: upload your creative
// work, answer the personality quiz, watch the agents debate your best
// role, then talk to a mentor or try the role hands-on. One Model drives
// the whole journey as an explicit screen state machine; every screen
// transition goes through setScreen so steps can never be skipped.
package flow

import (
	"context"
	"math/rand"
	"time"

	"careerspark/cmd/spark/config"
	"careerspark/cmd/spark/ui"
	"careerspark/internal/api"
	"careerspark/internal/quiz"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Screen identifies one step of the journey. The set is closed and
// ordered: navigation only ever moves to adjacent steps (or back to the
// welcome screen on restart).
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenUpload
	ScreenUploadSuccess
	ScreenQuestions
	ScreenQuizSuccess
	ScreenQuizLoading
	ScreenResults
	ScreenDebate
	ScreenLoader
	ScreenRoleResult
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenUpload:
		return "upload"
	case ScreenUploadSuccess:
		return "upload_success"
	case ScreenQuestions:
		return "questions"
	case ScreenQuizSuccess:
		return "quiz_success"
	case ScreenQuizLoading:
		return "quiz_loading"
	case ScreenResults:
		return "results"
	case ScreenDebate:
		return "debate"
	case ScreenLoader:
		return "loader"
	case ScreenRoleResult:
		return "role_result"
	default:
		return "unknown"
	}
}

// overlay is a modal layered over the role-result screen.
type overlay int

const (
	overlayNone overlay = iota
	overlayMentor
	overlayExperience
)

// Journey timing, matching the pacing of the original experience.
const (
	uploadAdvanceDelay = 2 * time.Second
	quizAdvanceDelay   = 2 * time.Second
	analysisRampTime   = 4 * time.Second
	analysisRampTick   = 200 * time.Millisecond
	loaderCycleDelay   = 2500 * time.Millisecond
	wrongOrderDelay    = 1500 * time.Millisecond
	gameTickInterval   = time.Second
)

// Messages. Timed messages carry the screen they were armed on and are
// dropped if the user has since navigated elsewhere.
type (
	// configChangedMsg delivers a live settings update from the watcher.
	configChangedMsg struct {
		cfg config.Config
		ok  bool
	}

	uploadDoneMsg struct {
		resp *api.UploadResponse
		err  error
	}
	quizSubmittedMsg struct{ err error }
	analysisMsg      struct {
		analysis *api.Analysis
		err      error
	}
	roleResultMsg struct {
		result *api.RoleResult
		err    error
	}
	debateEventMsg struct {
		ev api.DebateEvent
		ok bool // false once the stream has closed
	}
	chatReplyMsg struct {
		reply string
		err   error
	}

	advanceMsg    struct{ from Screen } // timed auto-advance
	rampTickMsg   struct{ from Screen } // analysis loading progress
	loaderFlipMsg struct{ from Screen } // loader message cycle

	// Experience timers carry the session generation they were armed
	// on; ticks from a closed or restarted session are dropped.
	gameTickMsg   struct{ gen int }
	clearOrderMsg struct{ gen int } // drop a wrong timeline selection
)

// Model is the top-level bubbletea model for the journey.
type Model struct {
	ctx      context.Context
	client   *api.Client
	settings *config.Service
	cfgCh    <-chan config.Config
	log      *zap.Logger
	styles   ui.Styles
	rng      *rand.Rand

	userID string
	bank   []quiz.Question
	width  int
	height int

	screen  Screen
	overlay overlay
	spinner spinner.Model
	expGen  int // bumps on every experience open and restart

	welcome welcomeState
	upload  uploadState
	quiz    quizState
	ramp    rampState
	results resultsState
	debate  debateState
	loader  loaderState
	role    roleState
	mentor  mentorState
	exp     experienceState
}

// NewModel wires the journey together. The settings service is injected
// so theme changes written by `spark theme` (or by hand) restyle the
// running UI; questions is the full quiz bank.
func NewModel(ctx context.Context, client *api.Client, settings *config.Service, questions []quiz.Question, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := settings.Current()
	styles := ui.NewStyles(ui.ThemeFromName(cfg.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		ctx:      ctx,
		client:   client,
		settings: settings,
		cfgCh:    settings.Watch(ctx),
		log:      log,
		styles:   styles,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		userID:   cfg.UserID,
		bank:     questions,
		screen:   ScreenWelcome,
		spinner:  sp,
		welcome:  newWelcomeState(),
		upload:   newUploadState(styles),
		quiz:     newQuizState(questions, styles),
		mentor:   newMentorState(styles),
	}
}

// Screen exposes the current step for tests.
func (m Model) Screen() Screen { return m.screen }

// Init starts the settings watcher and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForConfig(),
	)
}

// waitForConfig listens for one settings update, re-armed after each
// delivery.
func (m Model) waitForConfig() tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-m.cfgCh
		return configChangedMsg{cfg: cfg, ok: ok}
	}
}

// setScreen is the only place the journey advances or rewinds.
func (m *Model) setScreen(s Screen) {
	if m.screen == s {
		return
	}
	m.log.Debug("screen change", zap.Stringer("from", m.screen), zap.Stringer("to", s))
	m.screen = s
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case configChangedMsg:
		if !msg.ok {
			return m, nil // watcher closed, stop listening
		}
		m.applyConfig(msg.cfg)
		return m, m.waitForConfig()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// Handled here rather than per screen so a stream that opens after
	// the user has navigated elsewhere is still closed, never dropped.
	case debateOpenedMsg:
		return m.handleDebateOpened(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.teardown()
			return m, tea.Quit
		}
	}

	// Overlays capture all input while open.
	if m.overlay == overlayMentor {
		return m.updateMentor(msg)
	}
	if m.overlay == overlayExperience {
		return m.updateExperience(msg)
	}

	switch m.screen {
	case ScreenWelcome:
		return m.updateWelcome(msg)
	case ScreenUpload, ScreenUploadSuccess:
		return m.updateUpload(msg)
	case ScreenQuestions, ScreenQuizSuccess:
		return m.updateQuiz(msg)
	case ScreenQuizLoading:
		return m.updateRamp(msg)
	case ScreenResults:
		return m.updateResults(msg)
	case ScreenDebate:
		return m.updateDebate(msg)
	case ScreenLoader:
		return m.updateLoader(msg)
	case ScreenRoleResult:
		return m.updateRoleResult(msg)
	}
	return m, nil
}

// applyConfig restyles the UI from a live settings change. The backend
// URL and user ID are fixed at startup; only presentation follows the
// file.
func (m *Model) applyConfig(cfg config.Config) {
	m.styles = ui.NewStyles(ui.ThemeFromName(cfg.Theme))
	m.spinner.Style = m.styles.Spinner
	m.upload.restyle(m.styles)
	m.quiz.restyle(m.styles)
	m.mentor.restyle(m.styles)
	m.log.Info("applied settings change", zap.String("theme", cfg.Theme))
}

// teardown releases resources that outlive a single Update, today just
// the debate stream.
func (m *Model) teardown() {
	if m.debate.stream != nil {
		m.debate.stream.Close()
		m.debate.stream = nil
	}
}

func (m *Model) resize() {
	m.upload.resize(m.width)
	m.debate.resize(m.width, m.height)
	m.mentor.resize(m.width, m.height)
}

// advanceAfter schedules a timed transition armed on the current screen.
func (m Model) advanceAfter(d time.Duration) tea.Cmd {
	from := m.screen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return advanceMsg{from: from}
	})
}

// restart returns to the welcome screen with all journey state cleared,
// keeping the connection settings.
func (m *Model) restart() {
	m.teardown()
	m.overlay = overlayNone
	m.welcome = newWelcomeState()
	m.upload = newUploadState(m.styles)
	m.quiz = newQuizState(m.bank, m.styles)
	m.ramp = rampState{}
	m.results = resultsState{}
	m.debate = debateState{}
	m.loader = loaderState{}
	m.role = roleState{}
	m.mentor = newMentorState(m.styles)
	m.exp = experienceState{}
	m.setScreen(ScreenWelcome)
	m.resize()
}
