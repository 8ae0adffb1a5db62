package ministry

import (
	"slices"
	"strings"
)

// Type is the kind of a ministry. It decides which tabs the ministry screen shows.
type Type string

const (
	TypeCelula      Type = "celula"
	TypeLouvor      Type = "louvor"
	TypeInfantil    Type = "infantil"
	TypeJovens      Type = "jovens"
	TypeCasais      Type = "casais"
	TypeIntercessao Type = "intercessao"
	TypeMidia       Type = "midia"
)

var Types = []Type{
	TypeCelula,
	TypeLouvor,
	TypeInfantil,
	TypeJovens,
	TypeCasais,
	TypeIntercessao,
	TypeMidia,
}

// ParseType accepts the type as the backend sends it, ignoring case and surrounding spaces.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Types, t) {
		return "", false
	}
	return t, true
}

type Tab string

const (
	TabHome       Tab = "home"
	TabMembers    Tab = "members"
	TabEvents     Tab = "events"
	TabAttendance Tab = "attendance"
	TabCells      Tab = "cells"
	TabSchedule   Tab = "schedule"
	TabSongs      Tab = "songs"
	TabCheckin    Tab = "checkin"
	TabReports    Tab = "reports"
	TabSettings   Tab = "settings"
)

// AllTabs is the navigation order of every tab.
var AllTabs = []Tab{
	TabHome,
	TabMembers,
	TabEvents,
	TabAttendance,
	TabCells,
	TabSchedule,
	TabSongs,
	TabCheckin,
	TabReports,
	TabSettings,
}

var TabsByType = map[Type][]Tab{
	TypeCelula:      {TabHome, TabMembers, TabEvents, TabAttendance},
	TypeLouvor:      {TabHome, TabMembers, TabSchedule, TabSongs},
	TypeInfantil:    {TabHome, TabEvents, TabCheckin},
	TypeJovens:      {TabHome, TabMembers, TabEvents, TabCheckin},
	TypeCasais:      {TabHome, TabMembers, TabEvents},
	TypeIntercessao: {TabHome, TabSchedule},
	TypeMidia:       {TabHome, TabEvents, TabSchedule},
}

var MasterTabsByType = map[Type][]Tab{
	TypeCelula:      {TabHome, TabMembers, TabEvents, TabAttendance, TabCells, TabReports, TabSettings},
	TypeLouvor:      {TabHome, TabMembers, TabSchedule, TabSongs, TabReports, TabSettings},
	TypeInfantil:    {TabHome, TabMembers, TabEvents, TabAttendance, TabCheckin, TabReports, TabSettings},
	TypeJovens:      {TabHome, TabMembers, TabEvents, TabAttendance, TabCheckin, TabReports, TabSettings},
	TypeCasais:      {TabHome, TabMembers, TabEvents, TabAttendance, TabReports, TabSettings},
	TypeIntercessao: {TabHome, TabMembers, TabSchedule, TabReports, TabSettings},
	TypeMidia:       {TabHome, TabMembers, TabEvents, TabSchedule, TabReports, TabSettings},
}

// Compose returns the ordered tabs shown for a ministry of type t.
// Unknown types show no tabs.
func Compose(t Type, isMaster bool) []Tab {
	table := TabsByType
	if isMaster {
		table = MasterTabsByType
	}
	tabs, ok := table[t]
	if !ok {
		return []Tab{}
	}
	return slices.Clone(tabs)
}

// Visibility is the state of one navigation tab. Hidden tabs stay in the navigation
// disabled, so their screens keep their state.
type Visibility struct {
	Tab     Tab  `json:"tab"`
	Enabled bool `json:"enabled"`
}

// Visible reports whether t is in tabs.
func (t Tab) Visible(tabs []Tab) bool {
	return slices.Contains(tabs, t)
}

// Navigation returns every tab in navigation order, enabled when Compose shows it.
func Navigation(t Type, isMaster bool) []Visibility {
	tabs := Compose(t, isMaster)
	nav := make([]Visibility, 0, len(AllTabs))
	for _, tab := range AllTabs {
		nav = append(nav, Visibility{
			Tab:     tab,
			Enabled: tab.Visible(tabs),
		})
	}
	return nav
}
