package ports

import (
	"strconv"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
)

// IntentKind names a user intent emitted by a view.
type IntentKind string

const (
	IntentCheckAuth         IntentKind = "check_auth"
	IntentLogin             IntentKind = "login"
	IntentRegister          IntentKind = "register"
	IntentLogout            IntentKind = "logout"
	IntentFetch             IntentKind = "fetch_destinations"
	IntentAddDestination    IntentKind = "add_destination"
	IntentDeleteDestination IntentKind = "delete_destination"
	IntentUpdateDestination IntentKind = "update_destination"
)

// Intent is the DTO passed from a view to the intent queue. Only the fields
// relevant to Kind are read.
type Intent struct {
	Kind          IntentKind
	Credentials   domain.Credentials
	Registration  domain.Registration
	Destination   domain.NewDestination
	DestinationID int64
	Update        domain.DestinationUpdate
}

// ShardKey groups intents that must run in submission order. Session
// intents share one key; destination intents are keyed by destination.
func (in Intent) ShardKey() string {
	switch in.Kind {
	case IntentDeleteDestination, IntentUpdateDestination:
		return "destination:" + strconv.FormatInt(in.DestinationID, 10)
	case IntentAddDestination:
		return "destination:new"
	default:
		return "session"
	}
}
