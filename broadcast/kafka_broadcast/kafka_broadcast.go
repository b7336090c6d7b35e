package kafka_broadcast

import (
	"context"
	"crypto/ed25519"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/pensign/cardroom/broadcast"
	"github.com/pensign/cardroom/broadcast/local"
	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	kafkaMinBytes    = 10
	kafkaMaxBytes    = 10e6
	kafkaMaxAttempts = 16
)

var _ broadcast.Broadcaster = (*KafkaBroadcaster)(nil)

// busEnvelope is what actually travels over the topic. Exclusions ride
// along so every consuming instance applies the same "minus sender"
// semantics to its local connections.
type busEnvelope struct {
	ID        string              `json:"id"`
	Room      string              `json:"room"`
	Event     broadcast.RoomEvent `json:"event"`
	Exclude   []string            `json:"exclude,omitempty"`
	Signature []byte              `json:"signature,omitempty"`
}

func (e *busEnvelope) bytes() ([]byte, error) {
	unsigned := *e
	unsigned.Signature = nil
	return json.Marshal(&unsigned)
}

// KafkaBroadcaster publishes every group send to a shared topic and
// re-delivers consumed envelopes through the per-process local
// broadcaster. Group membership stays local: joins and leaves never hit
// the bus, only sends do. A send through this backend never bypasses
// the bus, otherwise participants connected to other instances would
// silently miss updates.
type KafkaBroadcaster struct {
	delegate *local.LocalBroadcaster
	logger   logger.Logger

	reader                               *kafka.Reader
	writer                               *kafka.Writer
	tlsConfig                            *tls.Config
	producerCreds, consumerCreds         *plain.Mechanism
	brokerEndpoint, consumerGroup, topic string
	timeout                              time.Duration

	signKey   ed25519.PrivateKey
	verifyKey ed25519.PublicKey

	cancel context.CancelFunc
	done   chan struct{}
}

func NewKafkaBroadcaster(
	delegate *local.LocalBroadcaster,
	log logger.Logger,
	brokerEndpoint,
	topic,
	consumerGroup string,
	tlsConfig *tls.Config,
	producerCreds,
	consumerCreds *plain.Mechanism,
	timeout time.Duration,
	signKey ed25519.PrivateKey,
) (*KafkaBroadcaster, error) {
	kb := &KafkaBroadcaster{
		delegate:       delegate,
		logger:         log,
		brokerEndpoint: brokerEndpoint,
		topic:          topic,
		consumerGroup:  consumerGroup,
		tlsConfig:      tlsConfig,
		producerCreds:  producerCreds,
		consumerCreds:  consumerCreds,
		timeout:        timeout,
		signKey:        signKey,
		done:           make(chan struct{}),
	}
	if signKey != nil {
		kb.verifyKey = signKey.Public().(ed25519.PublicKey)
	}

	if err := kb.reset(); err != nil {
		return nil, fmt.Errorf("failed to create a NewKafkaBroadcaster: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	kb.cancel = cancel
	go kb.consumeLoop(ctx)

	return kb, nil
}

func (kb *KafkaBroadcaster) JoinGroup(connectionID, room string) error {
	return kb.delegate.JoinGroup(connectionID, room)
}

func (kb *KafkaBroadcaster) LeaveGroup(connectionID, room string) error {
	return kb.delegate.LeaveGroup(connectionID, room)
}

func (kb *KafkaBroadcaster) SendToGroup(room string, event broadcast.RoomEvent, exclude ...string) error {
	envelope := busEnvelope{
		ID:      uuid.New().String(),
		Room:    room,
		Event:   event,
		Exclude: exclude,
	}

	if kb.signKey != nil {
		bz, err := envelope.bytes()
		if err != nil {
			return fmt.Errorf("failed to marshal envelope for signing: %w", err)
		}
		envelope.Signature = ed25519.Sign(kb.signKey, bz)
	}

	data, err := json.Marshal(&envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal a bus envelope: %w", err)
	}

	message := kafka.Message{Key: []byte(room), Value: data}
	if err := kb.writer.WriteMessages(context.Background(), message); err != nil {
		return fmt.Errorf("failed to WriteMessages: %w", err)
	}

	return nil
}

func (kb *KafkaBroadcaster) consumeLoop(ctx context.Context) {
	defer close(kb.done)

	for {
		kafkaMessage, err := kb.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			kb.logger.Log("failed to ReadMessage from bus: %v", err)
			continue
		}

		var envelope busEnvelope
		if err := json.Unmarshal(kafkaMessage.Value, &envelope); err != nil {
			kb.logger.Log("failed to unmarshal a bus envelope %s: %v", string(kafkaMessage.Value), err)
			continue
		}

		if kb.verifyKey != nil {
			bz, err := envelope.bytes()
			if err != nil {
				kb.logger.Log("failed to marshal envelope for verification: %v", err)
				continue
			}
			if !ed25519.Verify(kb.verifyKey, bz, envelope.Signature) {
				kb.logger.Log("dropped bus envelope %s with an invalid signature", envelope.ID)
				continue
			}
		}

		if err := kb.delegate.SendToGroup(envelope.Room, envelope.Event, envelope.Exclude...); err != nil {
			kb.logger.Log("failed to deliver bus envelope %s locally: %v", envelope.ID, err)
		}
	}
}

func (kb *KafkaBroadcaster) Close() error {
	if kb.cancel != nil {
		kb.cancel()
		<-kb.done
	}

	if kb.reader != nil {
		if err := kb.reader.Close(); err != nil {
			return fmt.Errorf("failed to Close reader: %w", err)
		}
	}

	if kb.writer != nil {
		if err := kb.writer.Close(); err != nil {
			return fmt.Errorf("failed to Close writer: %w", err)
		}
	}

	return kb.delegate.Close()
}

func (kb *KafkaBroadcaster) reset() error {
	// Every instance consumes the full topic under its own group id so
	// each process can serve its local connections.
	kb.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{kb.brokerEndpoint},
		GroupID:     kb.consumerGroup,
		Topic:       kb.topic,
		MinBytes:    kafkaMinBytes,
		MaxBytes:    kafkaMaxBytes,
		MaxAttempts: kafkaMaxAttempts,
		Dialer: &kafka.Dialer{
			Timeout:       kb.timeout,
			DualStack:     true,
			TLS:           kb.tlsConfig,
			SASLMechanism: kb.consumerCreds,
		},
	})

	kafka.DefaultTransport = &kafka.Transport{
		Dial: (&net.Dialer{
			Timeout: kb.timeout,
		}).DialContext,
		TLS:  kb.tlsConfig,
		SASL: kb.producerCreds,
	}
	kb.writer = &kafka.Writer{
		Addr:         kafka.TCP(kb.brokerEndpoint),
		Topic:        kb.topic,
		Balancer:     &kafka.LeastBytes{},
		MaxAttempts:  kafkaMaxAttempts,
		BatchTimeout: kb.timeout,
		ReadTimeout:  kb.timeout,
		WriteTimeout: kb.timeout,
	}

	return nil
}
