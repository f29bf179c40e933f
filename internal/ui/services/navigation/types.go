package navigation

import (
	"fmt"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
)

// RouteName identifies a screen
type RouteName string

const (
	RouteHome          RouteName = "home"
	RouteExplore       RouteName = "explore"
	RouteDetail        RouteName = "detail"
	RouteReview        RouteName = "review"
	RouteLogin         RouteName = "login"
	RouteRegister      RouteName = "register"
	RouteRegisterPlace RouteName = "register-place"
)

// Route is a parsed navigation target
type Route struct {
	Name  RouteName
	Path  string     // the path as requested, normalized
	ID    int64      // establishment id for detail and review
	Query url.Values // listing parameters for explore
}

// RequiresAuth reports whether the screen needs a logged-in user
func (r Route) RequiresAuth() bool {
	return r.Name == RouteReview || r.Name == RouteRegisterPlace
}

// DetailPath returns the route of an establishment's detail screen
func DetailPath(id int64) string {
	return fmt.Sprintf("/establishment/%d", id)
}

// ReviewPath returns the route of an establishment's review form
func ReviewPath(id int64) string {
	return fmt.Sprintf("/establishment/%d/review", id)
}

// NavigateMsg asks the root model to open Path. Replace swaps the current history entry.
type NavigateMsg struct {
	Path    string
	Replace bool
}

// SyncMsg records Path as the current route without rebuilding the screen
type SyncMsg struct {
	Path string
}

// BackMsg asks the root model to return to the previous screen
type BackMsg struct{}

// Navigate returns a command that emits a NavigateMsg for path
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// Redirect returns a command that replaces the current route with path
func Redirect(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path, Replace: true} }
}

// Sync returns a command that emits a SyncMsg for path
func Sync(path string) tea.Cmd {
	return func() tea.Msg { return SyncMsg{Path: path} }
}

// Back returns a command that emits a BackMsg
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}
