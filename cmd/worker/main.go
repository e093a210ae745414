// Command worker consumes activity events from Kafka and ships them to Loki.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"campus-clubs/backend/internal/config"
	"campus-clubs/backend/internal/telemetry/loki"
)

const pushTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("worker: %v", err)
	}
	brokers := cfg.ActivityKafkaBrokersList()
	if len(brokers) == 0 {
		log.Fatal("worker: KAFKA_BROKERS must be set")
	}
	if cfg.LokiURL == "" {
		log.Fatal("worker: LOKI_URL must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.ActivityKafkaTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	log.Printf("worker: consuming %s from %v", cfg.ActivityKafkaTopic, brokers)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Print("worker: shutting down")
				return
			}
			log.Fatalf("worker: fetch: %v", err)
		}

		pushCtx, cancel := context.WithTimeout(ctx, pushTimeout)
		err = loki.PushEventJSON(pushCtx, cfg.LokiURL, msg.Value)
		cancel()
		if err != nil {
			// Leave the offset uncommitted; the event is retried on the next fetch cycle.
			log.Printf("worker: push to loki: %v", err)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("worker: commit: %v", err)
		}
	}
}
