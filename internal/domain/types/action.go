package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnected"

	ActionExternalServiceFailed = "external_service_failed"

	ActionTrackingStarted   = "tracking_started"
	ActionTrackingStopped   = "tracking_stopped"
	ActionTrackingDenied    = "tracking_denied"
	ActionAccuracyFallback  = "accuracy_fallback"
	ActionRouteComputed     = "route_computed"
	ActionRouteFallback     = "route_fallback"
	ActionRerouteTriggered  = "reroute_triggered"
	ActionRerouteDiscarded  = "reroute_discarded"
	ActionDeliveryCompleted = "delivery_completed"
	ActionPinsImported      = "pins_imported"
	ActionOrderSubmitted    = "order_submitted"
)
