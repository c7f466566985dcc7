package ragchat

// QueryRequest is a chat question with optional retrieval controls.
type QueryRequest struct {
	// Query is the user question. Required.
	Query string `json:"query"`

	// Filters narrows retrieval by snippet metadata. A value is either a
	// scalar (equality), a range object with $gt/$gte/$lt/$lte bounds, or,
	// for the reserved companyId field, a hex object id. For example:
	//
	//	{"location": "Dhaka", "experienceLevel": {"$lte": 2}}
	Filters map[string]any `json:"filters,omitempty"`

	// TopK caps the number of retrieved snippets. Zero means the server
	// default.
	TopK int `json:"topK,omitempty"`
}

// QueryResponse is a grounded answer with its supporting snippets.
// Sources is empty when nothing in the knowledge base matched.
type QueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Source is one retrieved knowledge snippet, best match first.
type Source struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score"`
}

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded" or "unhealthy"
	Checks map[string]string `json:"checks"` // component name -> status
}
