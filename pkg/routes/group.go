package routes

import "net/http"

// Group organizes routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, route := range Flatten(groups...) {
		mux.HandleFunc(route.String(), route.Handler)
	}
}

// Flatten resolves groups into routes whose Pattern carries the full prefix,
// in registration order.
func Flatten(groups ...Group) []Route {
	var out []Route
	for _, group := range groups {
		out = flatten(out, "", group)
	}
	return out
}

func flatten(out []Route, parentPrefix string, group Group) []Route {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		route.Pattern = fullPrefix + route.Pattern
		out = append(out, route)
	}
	for _, child := range group.Children {
		out = flatten(out, fullPrefix, child)
	}
	return out
}
