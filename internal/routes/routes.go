// Package routes maps request paths to screens and carries navigation commands between them.
package routes

import (
	"fmt"
	"net/http"
	"strings"
)

// Screen identifies one of the top-level views.
type Screen string

// Screens.
const (
	ScreenDashboard   Screen = "dashboard"
	ScreenTransition  Screen = "transition"
	ScreenDestination Screen = "destination"
)

// Client-visible paths.
const (
	PathRoot     = "/"
	PathRelocate = "/relocate"
	PathBridge   = "/bridge"
	PathThriveOS = "/thrive-os"
)

// Fallback is where navigation lands when the requested route cannot be reached.
const Fallback = PathRoot

// Route binds a path to a screen.
type Route struct {
	Path   string
	Screen Screen
}

var table = []Route{
	{Path: PathRoot, Screen: ScreenDashboard},
	{Path: PathRelocate, Screen: ScreenDashboard},
	{Path: PathBridge, Screen: ScreenTransition},
	{Path: PathThriveOS, Screen: ScreenDestination},
}

// Table returns the route table in declaration order.
func Table() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Normalize strips trailing slashes; an empty result becomes "/".
func Normalize(path string) string {
	canonical := strings.TrimRight(path, "/")
	if canonical == "" {
		return PathRoot
	}
	return canonical
}

// Resolve returns the screen bound to path.
func Resolve(path string) (Screen, bool) {
	path = Normalize(path)
	for _, r := range table {
		if r.Path == path {
			return r.Screen, true
		}
	}
	return "", false
}

// UnknownRouteError is returned when navigation targets a path with no screen.
type UnknownRouteError struct {
	Path string
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("unknown route: %s", e.Path)
}

// Command asks the host to switch to another path.
type Command struct {
	Path   string `json:"path"`
	Screen Screen `json:"screen"`
}

// Navigator accepts navigation requests from the active screen.
type Navigator interface {
	Navigate(path string) error
}

// Channel is a Navigator that resolves the path and hands the command to a delivery function.
type Channel func(Command) error

// Navigate implements Navigator.
func (c Channel) Navigate(path string) error {
	screen, ok := Resolve(path)
	if !ok {
		return &UnknownRouteError{Path: path}
	}
	return c(Command{Path: Normalize(path), Screen: screen})
}

// RedirectTrailingSlash redirects a screen path with trailing slashes to its canonical form
// and reports whether it did. Paths that do not resolve to a screen are left alone.
func RedirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	if w == nil || r == nil || r.URL == nil {
		return false
	}

	original := r.URL.Path
	canonical := Normalize(original)
	if canonical == original {
		return false
	}
	if _, ok := Resolve(canonical); !ok {
		return false
	}

	target := canonical
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	status := http.StatusMovedPermanently
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		status = http.StatusPermanentRedirect
	}
	http.Redirect(w, r, target, status)
	return true
}
