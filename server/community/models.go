package community

import (
	"time"
)

type PersonType string

const (
	PersonTypeVisitor         PersonType = "visitor"
	PersonTypeRegularAttendee PersonType = "regular_attendee"
	PersonTypeMember          PersonType = "member"
)

func (t PersonType) Valid() bool {
	switch t {
	case PersonTypeVisitor, PersonTypeRegularAttendee, PersonTypeMember:
		return true
	}
	return false
}

type Person struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Type    PersonType `json:"type"`
	Present bool       `json:"present"`
	Photo   string     `json:"photo,omitempty"`
}

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCanceled  EventStatus = "canceled"
)

type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	EventDate   time.Time   `json:"eventDate"`
	Description string      `json:"description,omitempty"`
	Status      EventStatus `json:"status"`
	Type        string      `json:"type,omitempty"`
	Location    string      `json:"location,omitempty"`
}

type CheckStatus struct {
	AlreadyChecked bool `json:"alreadyChecked"`
}

type Ministry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type Cell struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MinistryID string `json:"ministryId"`
	LeaderID   string `json:"leaderId,omitempty"`
	LeaderName string `json:"leaderName,omitempty"`
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsMaster bool   `json:"isMaster"`
}

type rosterResp struct {
	Attendees []Person `json:"attendees"`
}

type markMultipleReq struct {
	EventID   string   `json:"event_id"`
	PersonIDs []string `json:"person_ids"`
}

type toggleReq struct {
	EventID  string `json:"event_id"`
	PersonID string `json:"person_id"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
