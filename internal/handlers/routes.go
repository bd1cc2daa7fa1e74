package handlers

import "github.com/labstack/echo/v4"

// Register mounts the API under /api and installs the error translator.
func Register(server *echo.Echo, accounts AccountService, sessions SessionRegistry, state StateService) {
	server.HTTPErrorHandler = HTTPError

	api := server.Group("/api")
	api.GET("/healthcheck", Healthcheck())
	api.POST("/signup", Signup(accounts))
	api.POST("/login", Login(accounts, sessions))

	authed := api.Group("", RequireSession(sessions))
	authed.POST("/logout", Logout(sessions))
	authed.GET("/me", Me(accounts))

	authed.GET("/dashboard", GetDashboard())
	authed.GET("/health", GetHealthSeries())
	authed.GET("/stats", GetStatsCharts())
	authed.GET("/locations", GetLocations())

	authed.GET("/timeline", GetTimeline(state))
	authed.POST("/sos", PostSOS(state))

	authed.GET("/contacts", GetContacts(state))
	authed.POST("/contacts", AddContact(state))
	authed.PUT("/contacts/:id", UpdateContact(state))
	authed.DELETE("/contacts/:id", DeleteContact(state))

	authed.GET("/privacy", GetPrivacy(state))
	authed.PUT("/privacy", UpdatePrivacy(state))
}
