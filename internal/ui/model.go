// Package ui renders the fuzzy picker as a Bubble Tea program. It is
// the rendering/input collaborator around internal/picker: the query
// line is owned by a bubbles textinput, every update feeds the input
// text and translated actions into the session, and the view is built
// from the session's rows and counts. All selection logic lives in the
// session; this package only draws and forwards.
package ui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/pickx/internal/config"
	"github.com/oakwood-commons/pickx/internal/picker"
)

// Model is the Bubble Tea model for one picker run.
type Model struct {
	Session *picker.Session
	Message string
	Input   textinput.Model
	Cfg     config.Config
	Styles  Styles

	WinWidth  int
	WinHeight int

	log      logr.Logger
	done     bool
	canceled bool
	result   picker.Result
}

// NewModel wires a session into a fresh model. The initial query, if
// any, is applied immediately so the first frame shows filtered rows.
func NewModel(session *picker.Session, message, initialQuery string, cfg config.Config, noColor bool, log logr.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.CharLimit = 500
	ti.SetWidth(80)
	ti.Prompt = cfg.Symbols.Prompt + " "
	ti.SetValue(initialQuery)
	ti.Focus()
	session.SetQuery(initialQuery)

	return Model{
		Session:   session,
		Message:   message,
		Input:     ti,
		Cfg:       cfg,
		Styles:    NewStyles(cfg.ActiveTheme(), noColor),
		WinWidth:  80,
		WinHeight: 24,
		log:       log,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.WinWidth = msg.Width
			m.Input.SetWidth(msg.Width - 4)
		}
		if msg.Height > 0 {
			m.WinHeight = msg.Height
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if ev, ok := translateKey(key, m.Session.Multiselect()); ok {
			m.log.V(1).Info("picker key", "key", key)
			switch {
			case ev.cancel:
				m.canceled = true
				return m, tea.Quit
			case ev.commit:
				res, ok := m.Session.Commit()
				if !ok {
					// Invalid: the view shows the message, editing continues.
					return m, nil
				}
				m.result = res
				m.done = true
				return m, tea.Quit
			default:
				for _, a := range ev.actions {
					m.Session.Apply(a)
				}
				return m, nil
			}
		}

		// Everything else edits the query. The session refilters and
		// reclamps synchronously before the next message is processed.
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		m.Session.SetQuery(m.Input.Value())
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// Done reports whether the user committed a result.
func (m Model) Done() bool { return m.done }

// Canceled reports whether the run was aborted with esc/ctrl+c.
func (m Model) Canceled() bool { return m.canceled }

// Result returns the committed result; only meaningful when Done.
func (m Model) Result() picker.Result { return m.result }
