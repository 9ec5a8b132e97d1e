package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	transactionWriter *kafka.Writer
	disputeWriter     *kafka.Writer
}

func NewKafkaPublisher(brokers []string, transactionTopic, disputeTopic string) *KafkaPublisher {
	return &KafkaPublisher{
		transactionWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    transactionTopic,
			Balancer: &kafka.LeastBytes{},
		},
		disputeWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    disputeTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *KafkaPublisher) PublishTransaction(event domain.TransactionEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.transactionWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *KafkaPublisher) PublishDispute(event domain.DisputeEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.disputeWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: msg,
		Time:  time.Now(),
	})
}
