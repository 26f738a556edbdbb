package handler

import "github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type destinationResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"des_name"`
	PosterURL      string `json:"poster_url,omitempty"`
	Activities     string `json:"activities,omitempty"`
	Accommodations string `json:"accommodations,omitempty"`
	Transportation string `json:"transportation,omitempty"`
}

// viewResponse is the JSON rendering of a domain.View. Reachable tells a
// client which presentational views it may show.
type viewResponse struct {
	State        domain.MacroState     `json:"state"`
	Reachable    []domain.ViewName     `json:"reachable"`
	User         *userResponse         `json:"user,omitempty"`
	Destinations []destinationResponse `json:"destinations"`
	Selected     *destinationResponse  `json:"selected,omitempty"`
}

func toViewResponse(v domain.View) viewResponse {
	resp := viewResponse{
		State:        v.State,
		Reachable:    v.Reachable(),
		Destinations: make([]destinationResponse, 0, len(v.Destinations)),
	}
	if v.User != nil {
		resp.User = &userResponse{ID: v.User.ID, Username: v.User.Username, Email: v.User.Email}
	}
	// Logged-out views never expose the (possibly stale) destination list.
	if v.State != domain.StateLoggedIn {
		return resp
	}
	for _, d := range v.Destinations {
		resp.Destinations = append(resp.Destinations, toDestinationResponse(d))
	}
	if v.Selected != nil {
		sel := toDestinationResponse(*v.Selected)
		resp.Selected = &sel
	}
	return resp
}

func toDestinationResponse(d domain.Destination) destinationResponse {
	return destinationResponse{
		ID:             d.ID,
		Name:           d.Name,
		PosterURL:      d.PosterURL,
		Activities:     d.Activities,
		Accommodations: d.Accommodations,
		Transportation: d.Transportation,
	}
}
