package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

type TripHandler struct {
	Planner *services.TripPlanner
	Repo    ports.TripRepository
}

// Plan computes a trip plan: resolved route plus the HOS daily log.
// The completed trip is persisted for history before responding.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	plan, err := h.Planner.PlanTrip(r.Context(), services.PlanTripRequest{
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
	})
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanTripResponse{
		LogSheet: toLogSheetResponse(plan.LogSheet),
		MapInfo:  toMapInfoResponse(plan.MapInfo),
	})
}

// writePlanError maps the failure taxonomy onto HTTP statuses:
// input the client can fix -> 400, provider outage -> 502, else 500.
func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ports.ValidationError
	if errors.As(err, &ve) {
		writeError(w, r, http.StatusBadRequest, ve.Error())
		return
	}

	var ge *ports.GeocodeError
	if errors.As(err, &ge) {
		writeError(w, r, http.StatusBadRequest, ge.Error())
		return
	}

	var re *ports.RouteError
	if errors.As(err, &re) {
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "routing provider unavailable")
		return
	}

	log.Printf("plan trip failed: %v", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// History lists recently planned trips, newest first.
func (h *TripHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	trips, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripResponse{
			TripID:           t.TripID,
			CurrentLocation:  t.CurrentLocation,
			PickupLocation:   t.PickupLocation,
			DropoffLocation:  t.DropoffLocation,
			CurrentCycleUsed: t.CurrentCycleUsed,
			DistanceMiles:    t.DistanceMiles,
			DurationHours:    t.DurationHours,
			CreatedAt:        t.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toLogSheetResponse(ls domain.LogSheet) dto.LogSheetResponse {
	grid := make([]dto.DutySegmentResponse, 0, len(ls.Grid))
	for _, seg := range ls.Grid {
		grid = append(grid, dto.DutySegmentResponse{
			Status: string(seg.Status),
			Start:  seg.Start,
			End:    seg.End,
		})
	}

	return dto.LogSheetResponse{
		Grid: grid,
		Totals: dto.DailyTotalsResponse{
			OffDuty: ls.Totals.OffDuty,
			Sleeper: ls.Totals.Sleeper,
			Driving: ls.Totals.Driving,
			OnDuty:  ls.Totals.OnDuty,
		},
		Recap: dto.CycleRecapResponse{
			TotalHoursLast7Days:         ls.Recap.HoursUsedLast7Days,
			TotalHoursAvailableTomorrow: ls.Recap.HoursAvailableTomorrow,
		},
		DriverInfo: dto.DriverInfoResponse{
			TotalMilesDrivingToday: ls.DriverInfo.MilesDrivingToday,
			TotalMileageToday:      ls.DriverInfo.TotalMileageToday,
		},
	}
}

func toMapInfoResponse(m domain.MapInfo) dto.MapInfoResponse {
	route := make([][]float64, 0, len(m.Route))
	for _, c := range m.Route {
		route = append(route, c.ToLatLon())
	}

	stops := make([]dto.StopResponse, 0, len(m.Stops))
	for _, s := range m.Stops {
		stops = append(stops, dto.StopResponse{
			Pos:   s.Position.ToLatLon(),
			Label: s.Label,
		})
	}

	return dto.MapInfoResponse{
		Route:     route,
		Stops:     stops,
		MapCenter: m.Center.ToLatLon(),
	}
}
