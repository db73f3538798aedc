package inventory

import (
	"context"
	"time"

	domain "github.com/warehouse-ops/warehouse-api/internal/domain/inventory"
	domoutbox "github.com/warehouse-ops/warehouse-api/internal/domain/outbox"
	"github.com/warehouse-ops/warehouse-api/internal/observability"
	"github.com/warehouse-ops/warehouse-api/internal/observability/logctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	serviceName = "inventory-service"

	useCaseList    = "inventory.list"
	useCaseCreate  = "inventory.create"
	useCaseGet     = "inventory.get"
	useCaseReplace = "inventory.replace"
	useCasePatch   = "inventory.patch"
	useCaseDelete  = "inventory.delete"

	spanPrefix     = "UC."
	publishTimeout = 300 * time.Millisecond
)

// Service exposes the inventory store operations with observability hooks.
type Service struct {
	repo      domain.Repository
	publisher domoutbox.Publisher
	tel       observability.Observability

	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
	pubCounter   observability.Counter   // events_published_total{event,outcome}
}

func NewService(repo domain.Repository, publisher domoutbox.Publisher, tel observability.Observability) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &Service{
		repo:         repo,
		publisher:    publisher,
		tel:          tel,
		log:          tel.Logger().With(observability.F("service", serviceName)),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		pubCounter:   metrics.Counter(observability.MEventsPublished),
	}
}

type CreateItemInput struct {
	Name     string
	Quantity int
	Price    float64
}

type ReplaceItemInput struct {
	ID       int64
	Name     string
	Quantity int
	Price    float64
}

type PatchItemInput struct {
	ID    int64
	Patch domain.Patch
}

func (s *Service) List(ctx context.Context) (_ []*domain.Item, err error) {
	ctx, finish := s.observe(ctx, useCaseList, "List")
	defer func() { finish(err) }()

	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in CreateItemInput) (_ *domain.Item, err error) {
	ctx, finish := s.observe(ctx, useCaseCreate, "CreateItem")
	defer func() { finish(err) }()

	item, err := domain.NewItem(in.Name, in.Quantity, in.Price)
	if err != nil {
		return nil, err
	}
	if err = s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewItemCreatedEvent(item))
	return item, nil
}

func (s *Service) Get(ctx context.Context, id int64) (_ *domain.Item, err error) {
	ctx, finish := s.observe(ctx, useCaseGet, "GetItem")
	defer func() { finish(err) }()

	return s.repo.Get(ctx, id)
}

func (s *Service) Replace(ctx context.Context, in ReplaceItemInput) (_ *domain.Item, err error) {
	ctx, finish := s.observe(ctx, useCaseReplace, "ReplaceItem")
	defer func() { finish(err) }()

	item, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	// Full replace: every field overwritten, same validation as create.
	item.Name = in.Name
	item.Quantity = in.Quantity
	item.Price = in.Price
	if err = item.Validate(); err != nil {
		return nil, err
	}
	if err = s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewItemUpdatedEvent(item))
	return item, nil
}

func (s *Service) Patch(ctx context.Context, in PatchItemInput) (_ *domain.Item, err error) {
	ctx, finish := s.observe(ctx, useCasePatch, "PatchItem")
	defer func() { finish(err) }()

	item, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err = item.Apply(in.Patch); err != nil {
		return nil, err
	}
	if err = s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewItemUpdatedEvent(item))
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, finish := s.observe(ctx, useCaseDelete, "DeleteItem")
	defer func() { finish(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, domain.NewItemDeletedEvent(id))
	return nil
}

// observe opens a span for the use case and returns a finish callback
// that records the span status, RED metrics, and a completion log line.
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

// publish is best-effort: a slow or failed publish never fails the request.
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
