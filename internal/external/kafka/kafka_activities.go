package gamification

import (
	"context"
	"fmt"
	"os"

	"github.com/segmentio/kafka-go"
)

// Чтение событий активности (жалобы, голоса, решения) из Kafka
type KafkaActivity struct {
	reader *kafka.Reader
}

func GetNewReader(topic string) (reader *KafkaActivity, err error) {
	// config
	kafkaurl := os.Getenv("KAFKA_ACTIVITY_URL")
	if kafkaurl == "" {
		return nil, fmt.Errorf("env KAFKA_ACTIVITY_URL is not set")
	}
	kafkaport := os.Getenv("KAFKA_ACTIVITY_PORT")
	if kafkaport == "" {
		return nil, fmt.Errorf("env KAFKA_ACTIVITY_PORT is not set")
	}

	kafkaconfig := kafka.ReaderConfig{
		Brokers: []string{kafkaurl + ":" + kafkaport},
		Topic:   topic,
		GroupID: "activities_gamification",
	}
	return &KafkaActivity{kafka.NewReader(kafkaconfig)}, nil
}

func (k *KafkaActivity) GetNewMessage(ctx context.Context) (activityJson string, err error) {
	msg, err := k.reader.ReadMessage(ctx)
	if err != nil {
		return "", err
	}
	return string(msg.Value), nil
}

func (k *KafkaActivity) CloseReader() {
	k.reader.Close()
}
