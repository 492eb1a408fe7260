package server

import (
	"github.com/unclebandit/simple-crm/internal/model"
	"github.com/unclebandit/simple-crm/internal/observability"
	"github.com/unclebandit/simple-crm/internal/queue"
)

// MeteredPublisher counts customer events before handing them to the broker.
type MeteredPublisher struct {
	Next    queue.Publisher
	Metrics *observability.Metrics
}

func (p *MeteredPublisher) Publish(topic string, payload any) error {
	if err := p.Next.Publish(topic, payload); err != nil {
		return err
	}
	if ev, ok := payload.(model.CustomerEvent); ok {
		p.Metrics.CountEvent(string(ev.Type))
	}
	return nil
}
