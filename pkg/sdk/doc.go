// Package ragchat provides a Go client for the job portal chat API.
//
// The client wraps the HTTP endpoints of the ragchat service: grounded
// question answering over the indexed job knowledge base, plus the
// service health report.
//
//	client, _ := ragchat.New("http://localhost:8080",
//	    ragchat.WithAPIKey(os.Getenv("API_KEY")),
//	    ragchat.WithTimeout(15*time.Second),
//	)
//	reply, err := client.Query(ctx, ragchat.QueryRequest{
//	    Query:   "Which backend jobs are open in Dhaka?",
//	    Filters: map[string]any{"location": "Dhaka"},
//	})
//
// Responses the server rejects come back as *APIError carrying the HTTP
// status and the server's error text:
//
//	var apiErr *ragchat.APIError
//	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
//	    // validation failure; apiErr.Message names the offending field
//	}
package ragchat
