package queue_publisher

import (
	"context"
	"time"

	"github.com/iliyamo/license-flow/internal/model"
	q "github.com/iliyamo/license-flow/internal/queue"
)

// ActionNotifier relays accepted workflow actions to the message broker.
// Publishing is fire-and-forget: broker failures are logged inside the
// publisher and never surfaced to the request.
type ActionNotifier struct {
	pub *Publisher
}

// NewActionNotifier returns a notifier bound to the actions queue.
func NewActionNotifier() *ActionNotifier {
	return &ActionNotifier{pub: NewPublisher(q.ActionsQueue)}
}

// ActionAccepted builds an ApplicationActionEvent from the committed
// application state and its history entry, then publishes it.
func (n *ActionNotifier) ActionAccepted(ctx context.Context, app model.Application, entry model.ActionHistory) {
	_ = n.pub.Publish(ctx, q.ApplicationActionEvent{
		ApplicationID: app.ID,
		ApplicantName: app.ApplicantName,
		Action:        entry.Action,
		ActorID:       entry.ActorID,
		Comment:       entry.Comments,
		Status:        app.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}
