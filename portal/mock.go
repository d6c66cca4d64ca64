package portal

import (
	"context"
	"github.com/stretchr/testify/mock"
)

// Stub mocks Portal.
type Stub struct {
	mock.Mock
}

// Publish calls mock.Mock.
func (s *Stub) Publish(ctx context.Context, topic Topic, payload interface{}) {
	s.Called(ctx, topic, payload)
}

// Published returns the payloads published to the given topic in call order.
func (s *Stub) Published(topic Topic) []interface{} {
	payloads := make([]interface{}, 0)
	for _, call := range s.Calls {
		if call.Method != "Publish" || call.Arguments.Get(1) != topic {
			continue
		}
		payloads = append(payloads, call.Arguments.Get(2))
	}
	return payloads
}
