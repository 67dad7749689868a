package queries

// GetDeadLettersQuery lists every delivery that exhausted its retry budget
// and is parked for manual intervention.
type GetDeadLettersQuery struct{}

// NewGetDeadLettersQuery creates a query for dead-lettered deliveries.
func NewGetDeadLettersQuery() GetDeadLettersQuery {
	return GetDeadLettersQuery{}
}
