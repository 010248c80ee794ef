package queue

// ShowChangedEvent is published whenever a show record is created, updated,
// deleted, or imported. It carries enough context for downstream consumers
// to audit or notify without querying the primary database.
type ShowChangedEvent struct {
	Action     string `json:"action"` // created | updated | deleted | imported
	ShowID     string `json:"show_id"`
	Title      string `json:"title"`
	ShowType   string `json:"show_type"`
	Subnetwork string `json:"subnetwork_id"`
	ActorID    string `json:"actor_id"`
	ActorRole  string `json:"actor_role"`
	OccurredAt string `json:"occurred_at"`
}
