package handler

import (
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

type loginRequest struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

func (r loginRequest) toDomain() domain.Credentials {
	return domain.Credentials{Username: r.Username, Email: r.Email, Password: r.Password}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r registerRequest) toDomain() domain.Registration {
	return domain.Registration{Username: r.Username, Email: r.Email, Password: r.Password}
}

type destinationRequest struct {
	Name           string `json:"des_name"       validate:"required,max=120"`
	PosterURL      string `json:"poster_url"     validate:"omitempty,url,max=200"`
	Activities     string `json:"activities"     validate:"max=200"`
	Accommodations string `json:"accommodations" validate:"max=200"`
	Transportation string `json:"transportation" validate:"max=200"`
}

func (r destinationRequest) toDomain() domain.NewDestination {
	return domain.NewDestination{
		Name:           r.Name,
		PosterURL:      r.PosterURL,
		Activities:     r.Activities,
		Accommodations: r.Accommodations,
		Transportation: r.Transportation,
	}
}

type updateRequest struct {
	PosterURL      string `json:"poster_url"     validate:"omitempty,url,max=200"`
	Activities     string `json:"activities"     validate:"max=200"`
	Accommodations string `json:"accommodations" validate:"max=200"`
	Transportation string `json:"transportation" validate:"max=200"`
}

func (r updateRequest) toDomain() domain.DestinationUpdate {
	return domain.DestinationUpdate{
		PosterURL:      r.PosterURL,
		Activities:     r.Activities,
		Accommodations: r.Accommodations,
		Transportation: r.Transportation,
	}
}

type acceptedResponse struct {
	Intent ports.IntentKind `json:"intent"`
	Status string           `json:"status"`
}
