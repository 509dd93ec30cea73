package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-session-keeper/internal/guard"
	"github.com/MKhiriev/go-session-keeper/models"
)

// Page is a screen registered in [RootModel] together with its realm.
type Page struct {
	Realm guard.Realm
	Model tea.Model
}

// RootModel is a TUI router:
// 1) keeps active page and publishes its realm to the route guard
// 2) renders the loading screen while the session is initializing
// 3) handles NavigateTo messages sent by the route guard and pages
// 4) fans session changes out to every page
// 5) delegates all other messages to the active page
type RootModel struct {
	pages   map[string]Page
	current string
	router  *router

	status     models.Status
	spinner    spinner.Model
	initialize tea.Cmd

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	quitByUser bool
	err        error
}

// NewRootModel registers all pages and opens startPage. initialize is run
// once the program starts and must report through an initializedMsg.
func NewRootModel(pages map[string]Page, startPage string, initialize tea.Cmd, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:      pages,
		current:    startPage,
		router:     newRouter(pages[startPage].Realm),
		status:     models.StatusInitializing,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		initialize: initialize,
		buildInfo:  buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{r.spinner.Tick, r.initialize}
	if page, ok := r.pages[r.current]; ok {
		cmds = append(cmds, page.Model.Init())
	}
	return tea.Batch(cmds...)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return r.handleKey(msg)

	case spinner.TickMsg:
		if r.status != models.StatusInitializing {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case initializedMsg:
		if msg.err != nil {
			r.err = msg.err
			return r, tea.Quit
		}
		return r, nil

	case sessionChangedMsg:
		r.status = msg.event.Current.Status
		var cmds []tea.Cmd
		for name, page := range r.pages {
			updated, cmd := page.Model.Update(msg)
			page.Model = updated
			r.pages[name] = page
			cmds = append(cmds, cmd)
		}
		return r, tea.Batch(cmds...)

	case NavigateTo:
		next, exists := r.pages[msg.Page]
		if !exists {
			return r, nil
		}
		r.showBuildInfo = false
		r.current = msg.Page
		r.router.set(next.Realm)
		return r, next.Model.Init()
	}

	return r.delegate(msg)
}

func (r RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.forceQuit) {
		r.quitByUser = true
		return r, tea.Quit
	}

	if r.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			r.showBuildInfo = false
		}
		return r, nil
	}

	if r.status == models.StatusInitializing {
		return r, nil
	}

	// single-letter hotkeys only where no text input has focus
	if r.router.Realm() == guard.RealmPrivate {
		switch {
		case key.Matches(msg, keys.quit):
			r.quitByUser = true
			return r, tea.Quit
		case key.Matches(msg, keys.version):
			r.showBuildInfo = true
			return r, nil
		}
	}

	return r.delegate(msg)
}

func (r RootModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	page, ok := r.pages[r.current]
	if !ok {
		return r, nil
	}

	updated, cmd := page.Model.Update(msg)
	page.Model = updated
	r.pages[r.current] = page
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.status == models.StatusInitializing {
		return renderPage("ЗАГРУЗКА", r.spinner.View()+" Восстановление сессии...", "")
	}

	page, ok := r.pages[r.current]
	if !ok {
		return renderPage("TUI", "", "")
	}
	return page.Model.View()
}
