package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mzaikin/rosterd/internal/server/models"
	"github.com/mzaikin/rosterd/internal/server/services"
)

type rosterEntryDTO struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	MachineID  string    `json:"machine_id"`
	ShiftID    string    `json:"shift_id"`
	Date       string    `json:"date"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toEntryDTO(e *models.RosterEntry) rosterEntryDTO {
	return rosterEntryDTO{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		MachineID:  e.MachineID,
		ShiftID:    e.ShiftID,
		Date:       models.FormatDate(e.Date),
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}

func toEntryDTOs(entries []*models.RosterEntry) []rosterEntryDTO {
	result := make([]rosterEntryDTO, 0, len(entries))
	for _, e := range entries {
		result = append(result, toEntryDTO(e))
	}
	return result
}

type slotDTO struct {
	Date      string `json:"date"`
	ShiftID   string `json:"shift_id"`
	MachineID string `json:"machine_id"`
}

func toSlotDTO(s models.Slot) slotDTO {
	return slotDTO{Date: models.FormatDate(s.Date), ShiftID: s.ShiftID, MachineID: s.MachineID}
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

type assignRequestDTO struct {
	EmployeeID string `json:"employee_id"`
	MachineID  string `json:"machine_id"`
	ShiftID    string `json:"shift_id"`
	Date       string `json:"date"`
	Notes      string `json:"notes,omitempty"`
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var dto assignRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if dto.EmployeeID == "" || dto.MachineID == "" || dto.ShiftID == "" {
		writeBadRequest(w, "employee_id, machine_id and shift_id are required")
		return
	}

	date, err := models.ParseDate(dto.Date)
	if err != nil {
		writeBadRequest(w, "date must be YYYY-MM-DD")
		return
	}

	entry, err := s.assignments.Assign(r.Context(), services.AssignRequest{
		EmployeeID: dto.EmployeeID,
		MachineID:  dto.MachineID,
		ShiftID:    dto.ShiftID,
		Date:       date,
		Notes:      dto.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryDTO(entry))
}

func (s *Server) handleUnassign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeBadRequest(w, "missing entry id")
		return
	}

	if _, err := s.assignments.Unassign(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	entries, err := s.queries.Range(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

func (s *Server) handleUnassigned(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	slots, err := s.queries.UnassignedSlots(r.Context(), start, end,
		splitList(r.URL.Query().Get("machine_ids")),
		splitList(r.URL.Query().Get("shift_ids")))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]slotDTO, 0, len(slots))
	for _, slot := range slots {
		result = append(result, toSlotDTO(slot))
	}
	writeJSON(w, http.StatusOK, result)
}

type gridCellDTO struct {
	Slot  slotDTO         `json:"slot"`
	Entry *rosterEntryDTO `json:"entry"`
}

type weekGridDTO struct {
	WeekStart string        `json:"week_start"`
	Days      int           `json:"days"`
	Cells     []gridCellDTO `json:"cells"`
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	weekStart, err := models.ParseDate(r.URL.Query().Get("week_start"))
	if err != nil {
		writeBadRequest(w, "week_start must be YYYY-MM-DD")
		return
	}

	grid, err := s.queries.WeeklyGrid(r.Context(), weekStart)
	if err != nil {
		writeError(w, err)
		return
	}

	dto := weekGridDTO{
		WeekStart: models.FormatDate(grid.WeekStart),
		Days:      grid.Days,
		Cells:     make([]gridCellDTO, 0, len(grid.Cells)),
	}
	for _, cell := range grid.Cells {
		c := gridCellDTO{Slot: toSlotDTO(cell.Slot)}
		if cell.Entry != nil {
			entry := toEntryDTO(cell.Entry)
			c.Entry = &entry
		}
		dto.Cells = append(dto.Cells, c)
	}
	writeJSON(w, http.StatusOK, dto)
}

type statsDTO struct {
	TotalSlots     int     `json:"total_slots"`
	AssignedSlots  int     `json:"assigned_slots"`
	AssignmentRate float64 `json:"assignment_rate"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	stats, err := s.queries.UtilizationStats(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsDTO{
		TotalSlots:     stats.TotalSlots,
		AssignedSlots:  stats.AssignedSlots,
		AssignmentRate: stats.AssignmentRate,
	})
}

func (s *Server) handleEmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	entries, err := s.queries.ScheduleForEmployee(r.Context(), r.PathValue("id"), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(entries))
}

// dateRange parses the start_date/end_date query parameters. On failure it
// writes a 400 and reports ok=false.
func dateRange(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	q := r.URL.Query()

	start, err := models.ParseDate(q.Get("start_date"))
	if err != nil {
		writeBadRequest(w, "start_date must be YYYY-MM-DD")
		return start, end, false
	}
	end, err = models.ParseDate(q.Get("end_date"))
	if err != nil {
		writeBadRequest(w, "end_date must be YYYY-MM-DD")
		return start, end, false
	}
	if end.Before(start) {
		writeBadRequest(w, "end_date precedes start_date")
		return start, end, false
	}
	return start, end, true
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
