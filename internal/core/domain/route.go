package domain

// Destinations the route guard redirects to.
const (
	LoginPath       = "/login"
	VerifyEmailPath = "/verify-email"
)

// DecisionKind is the outcome of a route guard evaluation.
type DecisionKind string

const (
	DecisionShowLoading DecisionKind = "show_loading"
	DecisionRedirect    DecisionKind = "redirect"
	DecisionRender      DecisionKind = "render"
)

// Decision tells the presentation layer what to do with a requested destination.
// ReturnTo carries the originally requested path on redirects.
type Decision struct {
	Kind     DecisionKind `json:"decision"`
	Path     string       `json:"path,omitempty"`
	ReturnTo string       `json:"return_to,omitempty"`
}
