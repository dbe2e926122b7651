package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/IBM/sarama"
	"github.com/lovoo/goka"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

// Security holds optional broker TLS and SASL/PLAIN settings.
// The zero value means plaintext without authentication.
type Security struct {
	TLS  *tls.Config
	User string
	Pass string
}

// ClientOpts returns franz-go options applying the settings.
func (s Security) ClientOpts() []kgo.Opt {
	var opts []kgo.Opt
	if s.TLS != nil {
		opts = append(opts, kgo.DialTLSConfig(s.TLS))
	}
	if s.User != "" {
		opts = append(opts, kgo.SASL(plain.Auth{User: s.User, Pass: s.Pass}.AsMechanism()))
	}
	return opts
}

func (s Security) saramaConfig() *sarama.Config {
	cfg := goka.DefaultConfig()
	if s.TLS != nil {
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = s.TLS
	}
	if s.User != "" {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		cfg.Net.SASL.User = s.User
		cfg.Net.SASL.Password = s.Pass
	}
	return cfg
}

// ApplyGokaSecurity installs the settings into the goka global config.
// It must be called before any processor or view is created.
func ApplyGokaSecurity(s Security) {
	goka.ReplaceGlobalConfig(s.saramaConfig())
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func withNonlogViewOpt() goka.ViewOption {
	return goka.WithViewLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderEventToSchemaV1(v domain.OrderEvent) (s schema.OrderEventV1) {
	s.EventType = string(v.Type)
	s.OrderID = v.OrderID
	s.Status = string(v.Status)
	s.PaymentMethod = string(v.PaymentMethod)
	s.PaymentStatus = string(v.PaymentStatus)
	s.TotalAmount = v.TotalAmount
	s.OccurredAt = v.OccurredAt
	return
}

func trackingFromEventV1(v schema.OrderEventV1) (s schema.OrderTrackingV1) {
	s.OrderID = v.OrderID
	s.Status = v.Status
	s.PaymentStatus = v.PaymentStatus
	s.TotalAmount = v.TotalAmount
	s.UpdatedAt = v.OccurredAt
	return
}

func trackingToDomain(s schema.OrderTrackingV1) domain.OrderTracking {
	return domain.OrderTracking{
		OrderID:       s.OrderID,
		Status:        domain.OrderStatus(s.Status),
		PaymentStatus: domain.PaymentStatus(s.PaymentStatus),
		TotalAmount:   s.TotalAmount,
		UpdatedAt:     s.UpdatedAt.UTC(),
	}
}
