package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const bridgeChannel = "booking-events"

// envelope é o que trafega no canal redis: o evento mais os
// destinatários e a instância de origem (para não entregar duas
// vezes o que a própria instância publicou).
type envelope struct {
	Origin     string `json:"origin"`
	Recipients []uint `json:"recipients"`
	Event      Event  `json:"event"`
}

// RedisBridge replica eventos entre instâncias via pub/sub, para que
// um push endereçado a um usuário conectado em outro processo ainda
// chegue nele. Implementa o mesmo Notifier do hub local.
type RedisBridge struct {
	hub        *Hub
	rdb        *redis.Client
	instanceID string
}

func NewRedisBridge(ctx context.Context, hub *Hub, addr string) (*RedisBridge, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	b := &RedisBridge{
		hub:        hub,
		rdb:        rdb,
		instanceID: uuid.NewString(),
	}

	go b.subscribe(ctx)
	return b, nil
}

func (b *RedisBridge) Publish(ev Event) {
	// entrega local primeiro; o bridge nunca atrasa quem está aqui
	b.hub.Publish(ev)

	payload, err := json.Marshal(envelope{
		Origin:     b.instanceID,
		Recipients: ev.Recipients,
		Event:      ev,
	})
	if err != nil {
		log.Println("realtime: marshal envelope:", err)
		return
	}

	if err := b.rdb.Publish(context.Background(), bridgeChannel, payload).Err(); err != nil {
		log.Println("realtime: redis publish:", err)
	}
}

func (b *RedisBridge) subscribe(ctx context.Context) {
	pubsub := b.rdb.Subscribe(ctx, bridgeChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Println("realtime: bad envelope:", err)
			continue
		}
		if env.Origin == b.instanceID {
			continue
		}

		ev := env.Event
		ev.Recipients = env.Recipients
		b.hub.Publish(ev)
	}
}

var _ Notifier = (*RedisBridge)(nil)
