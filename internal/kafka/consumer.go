package kafka

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler memproses satu message; return nil berarti offset boleh di-commit.
type Handler func(ctx context.Context, m kafka.Message) error

type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topic   string
	Workers int
}

type Consumer struct {
	reader  *kafka.Reader
	workers int
}

func NewConsumer(cfg ConsumerConfig) *Consumer {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.Brokers,
			GroupID:        cfg.GroupID,
			Topic:          cfg.Topic,
			MinBytes:       1,
			MaxBytes:       10e6,
			MaxWait:        500 * time.Millisecond,
			CommitInterval: 0, // commit manual setelah handler sukses
		}),
		workers: cfg.Workers,
	}
}

// Start membaca message dan membagikannya ke worker pool sampai ctx dibatalkan.
// Handler yang gagal tidak di-commit, jadi message akan di-deliver ulang.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.reader.Close()

	queue := make(chan kafka.Message, 1024)
	fails := make(chan error, c.workers)

	for i := 0; i < c.workers; i++ {
		go c.work(ctx, queue, fails, h)
	}

	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			close(queue)
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		select {
		case queue <- m:
		case <-ctx.Done():
			close(queue)
			return nil
		}

		// drain non-blocking supaya dispatcher tidak macet
		select {
		case err := <-fails:
			log.Printf("consumer: handler error: %v", err)
			time.Sleep(200 * time.Millisecond)
		default:
		}
	}
}

func (c *Consumer) work(ctx context.Context, queue <-chan kafka.Message, fails chan<- error, h Handler) {
	for m := range queue {
		if err := h(ctx, m); err != nil {
			fails <- err
			continue
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			fails <- err
		}
	}
}
