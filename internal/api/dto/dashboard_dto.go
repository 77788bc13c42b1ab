package dto

import "github.com/rashmods/helpdesk/internal/service"

// LeaderboardEntryResponse is one leaderboard row.
type LeaderboardEntryResponse struct {
	User   string `json:"user"`
	Points int    `json:"points"`
}

// DashboardResponse is the analytics snapshot.
type DashboardResponse struct {
	OpenTickets         int                        `json:"open_tickets"`
	ClosedTickets       int                        `json:"closed_tickets"`
	ClosedByResponder   map[string]int             `json:"closed_by_responder"`
	AvgResponseMinutes  float64                    `json:"avg_response_minutes"`
	FeedbackSatisfied   int                        `json:"feedback_satisfied"`
	FeedbackUnsatisfied int                        `json:"feedback_unsatisfied"`
	Leaderboard         []LeaderboardEntryResponse `json:"leaderboard"`
}

// PointsResponse reports a user's balance.
type PointsResponse struct {
	User   string `json:"user"`
	Points int    `json:"points"`
}

// FromSnapshot maps the analytics snapshot onto the response shape.
func FromSnapshot(s service.DashboardSnapshot) DashboardResponse {
	resp := DashboardResponse{
		OpenTickets:         s.OpenTickets,
		ClosedTickets:       s.ClosedTickets,
		ClosedByResponder:   make(map[string]int, len(s.ClosedByResponder)),
		AvgResponseMinutes:  s.AvgResponseMinutes,
		FeedbackSatisfied:   s.FeedbackSatisfied,
		FeedbackUnsatisfied: s.FeedbackUnsatisfied,
		Leaderboard:         make([]LeaderboardEntryResponse, 0, len(s.Leaderboard)),
	}
	for responder, count := range s.ClosedByResponder {
		resp.ClosedByResponder[string(responder)] = count
	}
	for _, entry := range s.Leaderboard {
		resp.Leaderboard = append(resp.Leaderboard, LeaderboardEntryResponse{
			User:   string(entry.User),
			Points: entry.Points,
		})
	}
	return resp
}
