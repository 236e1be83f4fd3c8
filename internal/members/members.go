package members

import "time"

// Member is one name listed by the /api status endpoint.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// DataObject is the payload returned by GET /api.
type DataObject struct {
	Members []string `json:"members"`
}
