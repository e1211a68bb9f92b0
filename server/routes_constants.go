package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteLogin   = "/login"
	RouteLogout  = "/logout"
	RouteProfile = "/profile"
	RouteHealth  = "/health"
)
