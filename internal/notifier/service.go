package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	kafkax "github.com/ariefcatur/go-storefront.git/internal/kafka"
	"github.com/ariefcatur/go-storefront.git/internal/redisx"
	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service adalah listener order.created. Sekarang cuma log;
// di sinilah email/push notification nantinya dikirim.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderCreated: dipasang sebagai handler consumer.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env store.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != store.EventOrderCreated {
		return nil // ignore
	}

	// dedup via Redis (pakai event_id), redelivery tidak boleh dobel notif
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
		exists, _ := redisx.Exists(ctx, s.Redis, dkey)
		if exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[store.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	log.Printf("order placed: order=%s customer=%s items=%d total_cents=%d",
		p.OrderID, p.CustomerID, len(p.Items), p.TotalCents)
	return nil
}
