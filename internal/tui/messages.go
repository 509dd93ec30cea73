package tui

import "github.com/MKhiriev/go-session-keeper/internal/session"

// NavigateTo asks [RootModel] to open Page.
type NavigateTo struct {
	Page string
}

// sessionChangedMsg carries a committed session transition into the program.
type sessionChangedMsg struct {
	event session.Event
}

type initializedMsg struct {
	err error
}

type authResultMsg struct {
	err error
}

type refreshResultMsg struct {
	err error
}

type signOutResultMsg struct {
	err error
}
