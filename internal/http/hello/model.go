package hello

// Data models the response payload for the hello endpoint.
type Data struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello from the service!" minLength:"1"`
}

// GetOutput is the response wrapper for GET /hello.
type GetOutput struct {
	Body Data
}
