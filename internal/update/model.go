package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskcal/internal/alarm"
	"github.com/sandeepkv93/taskcal/internal/calendar"
	"github.com/sandeepkv93/taskcal/internal/config"
	"github.com/sandeepkv93/taskcal/internal/logging"
	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/smartadd"
	"github.com/sandeepkv93/taskcal/internal/store"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Widget   string
	Grid     string
	List     string
	Settings string
	Smart    string
	Help     string
	Quit     string
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldTime
	FieldAlarm
)

// FormState is the manual task form opened for the selected date.
type FormState struct {
	Active   bool
	Date     time.Time
	Focus    FormField
	HasAlarm bool
	Err      string
}

type SmartAddState struct {
	Active     bool
	Processing bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Deps are the collaborators the program runs with. Zero values are
// replaced with in-memory or no-op stand-ins.
type Deps struct {
	Store         *store.Store
	Config        *config.Config
	SmartAdd      *smartadd.Adapter
	Poller        *alarm.Poller
	Notifications *alarm.Notifications
	Sound         *alarm.Sound
	Logger        log.FieldLogger
	Now           func() time.Time
}

type Model struct {
	CurrentView   model.ViewMode
	SelectedDate  time.Time
	DisplayMonth  time.Time
	ListCursor    int
	Form          FormState
	Smart         SmartAddState
	Palette       CommandPaletteState
	ConfirmClear  bool
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error
	Width         int

	store    *store.Store
	cfg      *config.Config
	smart    *smartadd.Adapter
	poller   *alarm.Poller
	perms    *alarm.Notifications
	sound    *alarm.Sound
	logger   log.FieldLogger
	now      func() time.Time
	interval time.Duration

	titleInput   textinput.Model
	timeInput    textinput.Model
	smartInput   textinput.Model
	commandInput textinput.Model
	spinner      spinner.Model
	helpModel    help.Model
}

func NewModel(deps Deps) Model {
	m := Model{
		CurrentView: model.ViewGrid,
		Keys: GlobalKeyMap{
			Widget:   "1",
			Grid:     "2",
			List:     "3",
			Settings: "4",
			Smart:    "s",
			Help:     "?",
			Quit:     "q",
		},
		store:  deps.Store,
		cfg:    deps.Config,
		smart:  deps.SmartAdd,
		poller: deps.Poller,
		perms:  deps.Notifications,
		sound:  deps.Sound,
		logger: deps.Logger,
		now:    deps.Now,
	}
	if m.cfg == nil {
		m.cfg = config.DefaultConfig()
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.store == nil {
		m.store = store.Open(context.Background(), nil, store.WithClock(m.now))
	}
	if m.perms == nil {
		m.perms = alarm.NewNotifications(alarm.NoopNotifier{}, false)
	}
	m.interval = m.cfg.AlarmInterval()
	if m.interval <= 0 {
		m.interval = alarm.DefaultInterval
	}

	today := m.now()
	m.SelectedDate = dayOf(today)
	m.DisplayMonth = calendar.Shift(today, 0)
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "做什么？"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 40

	m.timeInput = textinput.New()
	m.timeInput.Placeholder = "HH:mm"
	m.timeInput.CharLimit = 5
	m.timeInput.Width = 8

	m.smartInput = textinput.New()
	m.smartInput.Placeholder = "例如: 明天下午3点开会"
	m.smartInput.CharLimit = 256
	m.smartInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

func (m Model) ctx() context.Context {
	return context.Background()
}

type SwitchViewMsg struct {
	View model.ViewMode
}

// ClearStatusMsg expires a transient status. It only clears the status it
// was scheduled for; an empty Text clears whatever is shown.
type ClearStatusMsg struct {
	Text string
}

type AppErrorMsg struct {
	Err error
}

// AlarmTickMsg drives one alarm poll.
type AlarmTickMsg struct {
	At time.Time
}

type PermissionMsg struct {
	Permission alarm.Permission
}

// SmartAddResultMsg carries the parser outcome back into the loop.
type SmartAddResultMsg struct {
	Text   string
	Parsed smartadd.ParsedTask
	OK     bool
}
