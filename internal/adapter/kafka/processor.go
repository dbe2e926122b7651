package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/fashion-store/internal/core/port"
	"github.com/niksmo/fashion-store/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An orderEventCodec used for serde [schema.OrderEventV1]
type orderEventCodec struct {
	serde Serde
}

func newOrderEventCodec(s Serde) orderEventCodec {
	return orderEventCodec{s}
}

func (c orderEventCodec) Encode(v any) ([]byte, error) {
	const op = "orderEventCodec.Encode"
	if _, ok := v.(schema.OrderEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderEventCodec) Decode(data []byte) (any, error) {
	const op = "orderEventCodec.Decode"
	var s schema.OrderEventV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A trackingCodec used for serde [schema.OrderTrackingV1] group table values.
// Table values are plain avro without the registry header.
type trackingCodec struct {
	encodeFn func(any) ([]byte, error)
	decodeFn func([]byte, any) error
}

func newTrackingCodec() trackingCodec {
	s := schema.OrderTrackingV1Avro()
	return trackingCodec{
		encodeFn: schema.AvroEncodeFn(s),
		decodeFn: schema.AvroDecodeFn(s),
	}
}

func (c trackingCodec) Encode(v any) ([]byte, error) {
	const op = "trackingCodec.Encode"
	if _, ok := v.(schema.OrderTrackingV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	b, err := c.encodeFn(v)
	if err != nil {
		return nil, opErr(err, op)
	}
	return b, nil
}

func (c trackingCodec) Decode(data []byte) (any, error) {
	const op = "trackingCodec.Decode"
	var s schema.OrderTrackingV1
	if err := c.decodeFn(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

var _ port.OrderTrackerProcessor = (*OrderTrackerProcessor)(nil)

// An OrderTrackerProcessor folds order events from the input stream
// into the latest tracking value per order in the group table.
type OrderTrackerProcessor struct {
	opPrefix string
	proc     processor
}

func NewOrderTrackerProc(
	seedBrokers []string,
	inputStream string,
	group string,
	orderEventSerde Serde,
	opts ...goka.ProcessorOption,
) (*OrderTrackerProcessor, error) {
	const op = "NewOrderTrackerProc"

	p := OrderTrackerProcessor{opPrefix: "OrderTrackerProcessor"}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			newOrderEventCodec(orderEventSerde),
			p.processFn,
		),
		goka.Persist(newTrackingCodec()),
	)

	opts = append([]goka.ProcessorOption{withNonlogProcOpt()}, opts...)
	gp, err := goka.NewProcessor(seedBrokers, gg, opts...)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *OrderTrackerProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *OrderTrackerProcessor) Close() {
	p.proc.close()
}

func (p *OrderTrackerProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	event, ok := msg.(schema.OrderEventV1)
	if !ok {
		return
	}
	log := slog.With(
		"op", makeOp(p.opPrefix, op), "orderID", event.OrderID,
	)

	var prev *schema.OrderTrackingV1
	if v, ok := ctx.Value().(schema.OrderTrackingV1); ok {
		prev = &v
	}

	next, ok := nextTracking(prev, event)
	if !ok {
		log.Warn("stale event skipped", "eventType", event.EventType)
		return
	}
	ctx.SetValue(next)
	log.Info(
		"tracking updated",
		"status", next.Status,
		"paymentStatus", next.PaymentStatus,
	)
}

// nextTracking reports false when the event is older than the stored value.
func nextTracking(
	prev *schema.OrderTrackingV1, event schema.OrderEventV1,
) (schema.OrderTrackingV1, bool) {
	if prev != nil && event.OccurredAt.Before(prev.UpdatedAt) {
		return *prev, false
	}
	return trackingFromEventV1(event), true
}
