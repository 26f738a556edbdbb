package domain

// MacroState is the coarse logged-in / logged-out distinction that decides
// which views are reachable.
type MacroState string

const (
	StateLoggedOut MacroState = "logged_out"
	StateLoggedIn  MacroState = "logged_in"
)

// ViewName identifies one of the presentational collaborators.
type ViewName string

const (
	ViewLoginForm          ViewName = "login_form"
	ViewRegistrationForm   ViewName = "registration_form"
	ViewLogoutControl      ViewName = "logout_control"
	ViewAddDestinationForm ViewName = "add_destination_form"
	ViewDestinationList    ViewName = "destination_list"
	ViewDestinationDetails ViewName = "destination_details"
)

// View is an immutable snapshot of the controller state handed to renderers.
// Renderers must not keep it across renders.
type View struct {
	State        MacroState
	User         *User
	Destinations []Destination
	Selected     *Destination
}

// StateOf derives the macro-state from the presence of a user.
func StateOf(u *User) MacroState {
	if u == nil {
		return StateLoggedOut
	}
	return StateLoggedIn
}

// Reachable lists the views a renderer may show for this snapshot.
func (v View) Reachable() []ViewName {
	if v.State != StateLoggedIn {
		return []ViewName{ViewLoginForm, ViewRegistrationForm}
	}
	views := []ViewName{ViewLogoutControl, ViewAddDestinationForm, ViewDestinationList}
	if v.Selected != nil {
		views = append(views, ViewDestinationDetails)
	}
	return views
}

// CanShow reports whether name is reachable in this snapshot.
func (v View) CanShow(name ViewName) bool {
	for _, r := range v.Reachable() {
		if r == name {
			return true
		}
	}
	return false
}
