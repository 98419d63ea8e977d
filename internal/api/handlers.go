// HTTP handlers — snapshot reads and the control surface.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/seralo/citysim/internal/support"
)

// summaryLocked builds the per-tick summary. Callers hold s.mu.
func (s *Server) summaryLocked() map[string]any {
	st := s.Sim.State()
	return map[string]any{
		"date":         st.Date.String(),
		"week":         st.Date.TotalWeeks,
		"population":   st.Population,
		"money":        st.Money,
		"satisfaction": st.Satisfaction,
		"level":        st.Level,
		"paused":       s.Sim.Paused(),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.Sim.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"date":          st.Date.String(),
		"total_weeks":   st.Date.TotalWeeks,
		"level":         st.Level,
		"population":    st.Population,
		"money":         st.Money,
		"money_display": humanize.Comma(st.Money),
		"satisfaction":  st.Satisfaction,
		"balance":       st.MonthlyBalance,
		"facilities":    s.Sim.FacilityCount(""),
		"paused":        s.Sim.Paused(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Sim.State())
}

func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.Sim.State()
	factions := make([]map[string]any, 0, len(st.Support))
	for id, standing := range st.Support {
		factions = append(factions, map[string]any{
			"id":       id,
			"current":  standing.Current,
			"previous": standing.Previous,
			"change":   standing.Change,
			"band":     support.BandFor(standing.Current),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"factions": factions,
		"combined": s.Sim.CombinedEffects(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Sim.State().Accumulation)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	notifs := s.Sim.Notifications()
	s.mu.Unlock()

	if len(notifs) == 0 && s.Store != nil {
		if events, err := s.Store.RecentEvents(50); err == nil {
			writeJSON(w, http.StatusOK, map[string]any{"events": events})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": notifs})
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"missions":     s.Sim.Missions(),
		"achievements": s.Sim.Achievements(),
	})
}

func (s *Server) handleInfrastructure(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Sim.Infrastructure())
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, "persistence disabled")
		return
	}
	slots, err := s.Store.ListSnapshots()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weeks int `json:"weeks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Weeks < 1 {
		req.Weeks = 1
	}
	if req.Weeks > 208 { // four years per request is plenty
		req.Weeks = 208
	}

	for i := 0; i < req.Weeks; i++ {
		s.Tick()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.summaryLocked())
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paused bool `json:"paused"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	s.Sim.SetPaused(req.Paused)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"paused": req.Paused})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, "persistence disabled")
		return
	}
	var req struct {
		Slot string `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slot == "" {
		writeError(w, http.StatusBadRequest, "slot required")
		return
	}

	s.mu.Lock()
	err := s.Store.SaveSnapshot(req.Slot, s.Sim.State())
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": req.Slot})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotImplemented, "persistence disabled")
		return
	}
	var req struct {
		Slot string `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slot == "" {
		writeError(w, http.StatusBadRequest, "slot required")
		return
	}

	blob, err := s.Store.LoadSnapshotBlob(req.Slot)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	s.mu.Lock()
	err = s.Sim.LoadState(blob)
	summary := s.summaryLocked()
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
