package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

var ErrTooFewOpts = errors.New("too few options")

type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject string
	si      SchemaIdentifier
}

func (o serdeOpts) complete() bool {
	return o.subject != "" && o.si != nil
}

func SubjectOpt(subject string) Opt {
	return func(so *serdeOpts) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		so.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(so *serdeOpts) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		so.si = si
		return nil
	}
}

// NewSerdeOrderEventV1 registers the order event schema under the subject
// and returns a serde that frames payloads with the registry wire header.
func NewSerdeOrderEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	const op = "NewSerdeOrderEventV1"

	var so serdeOpts
	for _, o := range opts {
		if err := o(&so); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if !so.complete() {
		return nil, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	id, err := so.si.DetermineID(ctx, so.subject, OrderEventSchemaTextV1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := OrderEventV1Avro()
	var serde sr.Serde
	serde.Register(
		id,
		OrderEventV1{},
		sr.EncodeFn(AvroEncodeFn(s)),
		sr.DecodeFn(AvroDecodeFn(s)),
	)
	return &serde, nil
}
