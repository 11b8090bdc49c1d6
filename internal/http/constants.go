package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	// Public pages.
	PageLogin    = "login"
	PageRegister = "register"

	// Gated pages.
	PageChat      = "chat"
	PageDocuments = "documents"
	PageUsers     = "users"
	PageProfile   = "profile"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Route paths shared by handlers and templates.
const (
	HomePath      = "/app/chat"
	DocumentsPath = "/app/documents"
	UsersPath     = "/app/users"
	ProfilePath   = "/app/profile"
	RegisterPath  = "/register-tenant"
)

// Refresh events fired after a mutation so list fragments re-fetch themselves.
const (
	EventDocumentsChanged = "documents:changed"
	EventUsersChanged     = "users:changed"
)

// Pagination defaults.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:     "login-content",
	PageRegister:  "register-content",
	PageChat:      "chat-content",
	PageDocuments: "documents-content",
	PageUsers:     "users-content",
	PageProfile:   "profile-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to chat-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "chat-content"
}
