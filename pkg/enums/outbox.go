package enums

// OutboxEventType identifies the domain event stored in outbox_events.
type OutboxEventType string

const (
	OutboxEventOrderSubmitted       OutboxEventType = "order.submitted"
	OutboxEventNotificationTestSent OutboxEventType = "notification.test_sent"
)

// OutboxAggregateType names the aggregate the event belongs to.
type OutboxAggregateType string

const (
	OutboxAggregateOrder        OutboxAggregateType = "order"
	OutboxAggregateNotification OutboxAggregateType = "notification"
)
