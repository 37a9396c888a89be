package messaging

import "fmt"

type Topic string

const (
	// Tracking carries storefront search events.
	Tracking Topic = "tracking"
)

// GlobalPrefix is shared by every storefront instance.
const GlobalPrefix = "global"

// Name is both the exchange and the routing key of a topic.
func Name(prefix string, topic Topic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}
