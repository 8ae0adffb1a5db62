package web

import (
	"net/http"

	"github.com/topi314/church-tools/internal/xquery"
	"github.com/topi314/church-tools/server/community"
	"github.com/topi314/church-tools/server/messages"
	"github.com/topi314/church-tools/server/ministry"
)

func (h *handler) Ministries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ministries, err := h.Client(deviceID(r)).ListMinistries(ctx)
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}
	if ministries == nil {
		ministries = []community.Ministry{}
	}

	writeJSON(ctx, w, http.StatusOK, ministries)
}

func (h *handler) MinistryCells(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cells, err := h.Client(deviceID(r)).ListCells(ctx, r.PathValue("ministry_id"))
	if err != nil {
		writeError(ctx, w, messages.OpLoad, err)
		return
	}
	if cells == nil {
		cells = []community.Cell{}
	}

	writeJSON(ctx, w, http.StatusOK, cells)
}

type tabsResponse struct {
	Type       ministry.Type         `json:"type"`
	Master     bool                  `json:"master"`
	Tabs       []ministry.Tab        `json:"tabs"`
	Navigation []ministry.Visibility `json:"navigation"`
}

// MinistryTabs returns the tabs of a ministry screen. Without a master query parameter
// the role of the logged in user decides.
func (h *handler) MinistryTabs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	t := ministry.Type(xquery.ParseString(query, "type", ""))
	if parsed, ok := ministry.ParseType(string(t)); ok {
		t = parsed
	}

	var master bool
	if query.Has("master") {
		master = xquery.ParseBool(query, "master", false)
	} else {
		user, err := h.Client(deviceID(r)).GetMe(ctx)
		if err != nil {
			writeError(ctx, w, messages.OpLoad, err)
			return
		}
		master = user.IsMaster
	}

	writeJSON(ctx, w, http.StatusOK, tabsResponse{
		Type:       t,
		Master:     master,
		Tabs:       ministry.Compose(t, master),
		Navigation: ministry.Navigation(t, master),
	})
}
