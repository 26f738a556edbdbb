package domain

import "encoding/json"

// Destination is a backend-owned travel entry belonging to a user.
// Everything except ID is opaque display data for the client.
type Destination struct {
	ID             int64  `json:"id"`
	Name           string `json:"des_name"`
	PosterURL      string `json:"poster_url,omitempty"`
	Activities     string `json:"activities,omitempty"`
	Accommodations string `json:"accommodations,omitempty"`
	Transportation string `json:"transportation,omitempty"`
	UserID         int64  `json:"user_id,omitempty"`
}

// UnmarshalJSON accepts "name" as an alias of "des_name" so backends that
// expose the shorter key decode into the same shape.
func (d *Destination) UnmarshalJSON(b []byte) error {
	type plain Destination
	aux := struct {
		*plain
		AltName string `json:"name"`
	}{plain: (*plain)(d)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if d.Name == "" {
		d.Name = aux.AltName
	}
	return nil
}

// NewDestination holds the fields submitted by the add-destination form.
type NewDestination struct {
	Name           string `json:"des_name"`
	PosterURL      string `json:"poster_url"`
	Activities     string `json:"activities"`
	Accommodations string `json:"accommodations"`
	Transportation string `json:"transportation"`
}

// DestinationUpdate carries a partial update. Empty fields are left
// unchanged by the backend.
type DestinationUpdate struct {
	PosterURL      string `json:"poster_url,omitempty"`
	Activities     string `json:"activities,omitempty"`
	Accommodations string `json:"accommodations,omitempty"`
	Transportation string `json:"transportation,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u DestinationUpdate) IsEmpty() bool {
	return u == DestinationUpdate{}
}

// FindDestination returns the element of list with the given id.
func FindDestination(list []Destination, id int64) (Destination, bool) {
	for _, d := range list {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}
