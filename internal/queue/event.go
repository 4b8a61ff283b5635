// Package queue defines message payloads exchanged over the message broker.
package queue

// ActionsQueue is the durable queue carrying accepted workflow actions.
// The publisher and the consumer both bind to it by this name.
const ActionsQueue = "application.actions"

// ApplicationActionEvent is published whenever the workflow engine accepts
// a status change or a forward. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ApplicationActionEvent struct {
	ApplicationID string `json:"application_id"`
	ApplicantName string `json:"applicant_name"`
	Action        string `json:"action"`
	ActorID       uint64 `json:"actor_id"`
	Comment       string `json:"comment"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}
