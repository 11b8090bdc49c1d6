package viewmodel

// User represents the authenticated identity exposed to templates.
type User struct {
	Email      string
	Role       string
	TenantName string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	IsAdmin         bool
	User            *User
}

// NavItem is one entry in the sidebar.
type NavItem struct {
	Href   string
	Label  string
	Active bool
}
