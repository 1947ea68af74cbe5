package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	blogPostHandler  blogPostHandler
	commentHandler   commentHandler
	dashboardHandler dashboardHandler
	aiHandler        aiHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
}
