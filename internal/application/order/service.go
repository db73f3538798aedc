package order

import (
	"context"
	"fmt"
	"time"

	domain "github.com/warehouse-ops/warehouse-api/internal/domain/order"
	domoutbox "github.com/warehouse-ops/warehouse-api/internal/domain/outbox"
	"github.com/warehouse-ops/warehouse-api/internal/observability"
	"github.com/warehouse-ops/warehouse-api/internal/observability/logctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	serviceName = "order-service"

	useCaseList    = "order.list"
	useCaseCreate  = "order.create"
	useCaseGet     = "order.get"
	useCaseReplace = "order.replace"
	useCasePatch   = "order.patch"
	useCaseDelete  = "order.delete"

	spanPrefix     = "UC."
	publishTimeout = 300 * time.Millisecond
)

// Service exposes the order store operations. Every operation that sets
// the item list checks each referenced id against the inventory catalog
// at that moment; existence is never re-checked afterwards.
type Service struct {
	repo      domain.Repository
	catalog   ItemCatalog
	publisher domoutbox.Publisher
	tel       observability.Observability

	log          observability.Logger
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	pubCounter   observability.Counter
}

func NewService(repo domain.Repository, catalog ItemCatalog, publisher domoutbox.Publisher, tel observability.Observability) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &Service{
		repo:         repo,
		catalog:      catalog,
		publisher:    publisher,
		tel:          tel,
		log:          tel.Logger().With(observability.F("service", serviceName)),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		pubCounter:   metrics.Counter(observability.MEventsPublished),
	}
}

type CreateOrderInput struct {
	Customer string
	Items    []int64
	Status   domain.Status
}

type ReplaceOrderInput struct {
	ID       int64
	Customer string
	Items    []int64
	Status   domain.Status
}

type PatchOrderInput struct {
	ID    int64
	Patch domain.Patch
}

func (s *Service) List(ctx context.Context) (_ []*domain.Order, err error) {
	ctx, finish := s.observe(ctx, useCaseList, "ListOrders")
	defer func() { finish(err) }()

	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in CreateOrderInput) (_ *domain.Order, err error) {
	ctx, finish := s.observe(ctx, useCaseCreate, "CreateOrder")
	defer func() { finish(err) }()

	o, err := domain.New(in.Customer, in.Items, in.Status)
	if err != nil {
		return nil, err
	}
	if err = s.checkItems(ctx, o.Items); err != nil {
		return nil, err
	}
	if err = s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewOrderCreatedEvent(o))
	return o, nil
}

func (s *Service) Get(ctx context.Context, id int64) (_ *domain.Order, err error) {
	ctx, finish := s.observe(ctx, useCaseGet, "GetOrder")
	defer func() { finish(err) }()

	return s.repo.Get(ctx, id)
}

func (s *Service) Replace(ctx context.Context, in ReplaceOrderInput) (_ *domain.Order, err error) {
	ctx, finish := s.observe(ctx, useCaseReplace, "ReplaceOrder")
	defer func() { finish(err) }()

	o, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	o.Customer = in.Customer
	o.Items = append([]int64(nil), in.Items...)
	o.Status = in.Status
	if err = o.Validate(); err != nil {
		return nil, err
	}
	if err = s.checkItems(ctx, o.Items); err != nil {
		return nil, err
	}
	if err = s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewOrderUpdatedEvent(o))
	return o, nil
}

func (s *Service) Patch(ctx context.Context, in PatchOrderInput) (_ *domain.Order, err error) {
	ctx, finish := s.observe(ctx, useCasePatch, "PatchOrder")
	defer func() { finish(err) }()

	o, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err = o.Apply(in.Patch); err != nil {
		return nil, err
	}
	// Only a supplied item list is re-validated; untouched stale
	// references survive an unrelated patch.
	if in.Patch.Items != nil {
		if err = s.checkItems(ctx, o.Items); err != nil {
			return nil, err
		}
	}
	if err = s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewOrderUpdatedEvent(o))
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, finish := s.observe(ctx, useCaseDelete, "DeleteOrder")
	defer func() { finish(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, domain.NewOrderDeletedEvent(id))
	return nil
}

func (s *Service) checkItems(ctx context.Context, ids []int64) error {
	missing, err := s.catalog.Missing(ctx, ids)
	if err != nil {
		return fmt.Errorf("order: item lookup: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", domain.ErrUnknownItem, missing)
	}
	return nil
}

func (s *Service) observe(ctx context.Context, useCase, spanName string) (context.Context, func(error)) {
	ctx, span := s.tel.Tracer().Start(ctx, spanPrefix+spanName,
		attribute.String("use_case", useCase),
	)
	start := time.Now()
	logger := logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCase))

	return ctx, func(err error) {
		lat := time.Since(start).Seconds()
		outcome := "success"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()

		s.reqCounter.Add(1,
			observability.L("use_case", useCase),
			observability.L("outcome", outcome),
		)
		s.durHistogram.Observe(lat,
			observability.L("use_case", useCase),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("latency_seconds", lat),
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}
}

func (s *Service) publish(ctx context.Context, e domoutbox.Event) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	outcome := "success"
	if err := s.publisher.Publish(pubCtx, e); err != nil {
		outcome = "error"
		logctx.FromOr(ctx, s.log).Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err.Error()),
		)
	}
	s.pubCounter.Add(1,
		observability.L("event", e.EventName()),
		observability.L("outcome", outcome),
	)
}
