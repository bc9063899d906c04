package reservation

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/community-market/cmd/config"
	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	productrepo "github.com/muhammadheryan/community-market/repository/product"
	redisrepo "github.com/muhammadheryan/community-market/repository/redis"
	reservationrepo "github.com/muhammadheryan/community-market/repository/reservation"
	txrepo "github.com/muhammadheryan/community-market/repository/tx"
	"github.com/muhammadheryan/community-market/thirdparty/rabbitmq"
	"github.com/muhammadheryan/community-market/utils/errors"
	"github.com/muhammadheryan/community-market/utils/logger"
	"go.uber.org/zap"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

type ReservationApp interface {
	CreateReservation(ctx context.Context, customerID uint64, req *model.CreateReservationRequest) (*model.ReservationEntity, error)
	ConfirmReservation(ctx context.Context, reservationID uint64, actor model.Principal) (*model.ReservationDetail, error)
	CancelReservation(ctx context.Context, reservationID uint64, actor model.Principal) (*model.ReservationDetail, error)
	ExpireReservation(ctx context.Context, reservationID uint64) error
	UpdateReservationStatus(ctx context.Context, reservationID uint64, actor model.Principal, status constant.ReservationStatus) (*model.ReservationDetail, error)
	UpdateReservation(ctx context.Context, reservationID uint64, actor model.Principal, req *model.UpdateReservationRequest) (*model.ReservationDetail, error)
	DeleteReservation(ctx context.Context, reservationID uint64, actor model.Principal) error
	GetReservation(ctx context.Context, reservationID uint64, actor model.Principal) (*model.ReservationDetail, error)
	ListMyReservations(ctx context.Context, actor model.Principal, filter model.ReservationFilter) (*model.ReservationListResponse, error)
	ListMyProductReservations(ctx context.Context, actor model.Principal, filter model.ReservationFilter) (*model.ReservationListResponse, error)
	ListProductReservations(ctx context.Context, productID uint64, actor model.Principal, filter model.ReservationFilter) (*model.ReservationListResponse, error)
	GetStats(ctx context.Context, actor model.Principal) (*model.ReservationStats, error)
}

// ExpirationScheduler delivers a reservation back for expiry after its pending TTL
type ExpirationScheduler interface {
	ScheduleExpiration(msg rabbitmq.ReservationExpirationMessage) error
}

// EventPublisher announces committed reservation state changes
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, eventType constant.ReservationEventType, payload model.ReservationEventPayload) error
}

type reservationAppImpl struct {
	config          *config.Config
	txRepo          txrepo.TxRepository
	reservationRepo reservationrepo.ReservationRepository
	productRepo     productrepo.ProductRepository
	redisRepo       redisrepo.Repository
	scheduler       ExpirationScheduler
	events          EventPublisher
}

// NewReservationApp wires the reservation workflows. redisRepo, scheduler and
// events are optional and may be nil.
func NewReservationApp(
	config *config.Config,
	txRepo txrepo.TxRepository,
	reservationRepo reservationrepo.ReservationRepository,
	productRepo productrepo.ProductRepository,
	redisRepo redisrepo.Repository,
	scheduler ExpirationScheduler,
	events EventPublisher,
) ReservationApp {
	return &reservationAppImpl{
		config:          config,
		txRepo:          txRepo,
		reservationRepo: reservationRepo,
		productRepo:     productRepo,
		redisRepo:       redisRepo,
		scheduler:       scheduler,
		events:          events,
	}
}

func (s *reservationAppImpl) CreateReservation(ctx context.Context, customerID uint64, req *model.CreateReservationRequest) (*model.ReservationEntity, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[CreateReservation] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if product.UserID == customerID {
		return nil, errors.SetCustomError(constant.ErrSelfReservation)
	}

	if req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidQuantity)
	}

	// advisory only: stock is not held until confirmation
	if product.StockQuantity < req.Quantity {
		logger.Info("[CreateReservation] insufficient stock", zap.Uint64("product_id", product.ID), zap.Int64("need", req.Quantity), zap.Int64("available", product.StockQuantity))
		return nil, errors.SetCustomError(constant.ErrInsufficientStock)
	}

	entity, err := s.reservationRepo.Create(ctx, &model.ReservationEntity{
		UserID:          customerID,
		ProductID:       product.ID,
		Quantity:        req.Quantity,
		Note:            req.Note,
		ShippingAddress: req.ShippingAddress,
		Status:          constant.ReservationStatusPending,
	})
	if err != nil {
		logger.Error("[CreateReservation] insert reservation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	entity.CreatedAt = time.Now()

	s.invalidateStats(ctx, customerID, product.UserID)
	s.scheduleExpiration(entity)
	s.publish(ctx, constant.EventReservationCreated, model.ReservationEventPayload{
		ReservationID: entity.ID,
		ProductID:     entity.ProductID,
		CustomerID:    customerID,
		ActorID:       customerID,
		Quantity:      entity.Quantity,
		Status:        entity.Status,
	})

	return entity, nil
}

// ConfirmReservation accepts a pending reservation and decrements product
// stock in one transaction. The reservation and product rows stay locked from
// the first read until commit, so concurrent confirmations on one product are
// applied one after another against the current stock.
func (s *reservationAppImpl) ConfirmReservation(ctx context.Context, reservationID uint64, actor model.Principal) (*model.ReservationDetail, error) {
	var (
		confirmed *model.ReservationDetail
		remaining int64
	)

	err := txrepo.WithTransaction(ctx, s.txRepo, func(tx *sqlx.Tx) error {
		r, err := s.reservationRepo.GetForUpdateTx(ctx, tx, reservationID)
		if err != nil {
			logger.Error("[ConfirmReservation] get reservation", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if r == nil {
			return errors.SetCustomError(constant.ErrNotFound)
		}

		if !actor.IsAdmin && r.ProductOwnerID != actor.UserID {
			return errors.SetCustomError(constant.ErrForbidden)
		}

		if r.Status != constant.ReservationStatusPending {
			return errors.SetCustomError(constant.ErrConfirmNotPending)
		}

		stock, err := s.productRepo.GetForUpdateTx(ctx, tx, r.ProductID)
		if err != nil {
			logger.Error("[ConfirmReservation] get product stock", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if stock == nil {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		if stock.StockQuantity < r.Quantity {
			logger.Info("[ConfirmReservation] insufficient stock", zap.Uint64("reservation_id", reservationID), zap.Int64("need", r.Quantity), zap.Int64("available", stock.StockQuantity))
			return errors.SetCustomError(constant.ErrInsufficientStock)
		}

		if err := s.reservationRepo.UpdateStatusTx(ctx, tx, reservationID, constant.ReservationStatusConfirmed); err != nil {
			logger.Error("[ConfirmReservation] update status", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		if err := s.productRepo.DecrementStockTx(ctx, tx, r.ProductID, r.Quantity); err != nil {
			if errors.Is(err, constant.ErrInsufficientStock) {
				return err
			}
			logger.Error("[ConfirmReservation] decrement stock", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		confirmed = r
		remaining = stock.StockQuantity - r.Quantity
		return nil
	})
	if err != nil {
		return nil, asCustomError("[ConfirmReservation]", err)
	}

	confirmed.Status = constant.ReservationStatusConfirmed
	s.invalidateStats(ctx, confirmed.UserID, confirmed.ProductOwnerID)
	s.publish(ctx, constant.EventReservationConfirmed, model.ReservationEventPayload{
		ReservationID:  reservationID,
		ProductID:      confirmed.ProductID,
		CustomerID:     confirmed.UserID,
		ActorID:        actor.UserID,
		Quantity:       confirmed.Quantity,
		Status:         constant.ReservationStatusConfirmed,
		RemainingStock: &remaining,
	})

	return s.reload(ctx, "[ConfirmReservation]", confirmed), nil
}

func (s *reservationAppImpl) CancelReservation(ctx context.Context, reservationID uint64, actor model.Principal) (*model.ReservationDetail, error) {
	r, err := s.getExisting(ctx, "[CancelReservation]", reservationID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && r.UserID != actor.UserID && r.ProductOwnerID != actor.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	if r.Status != constant.ReservationStatusPending {
		return nil, errors.SetCustomError(constant.ErrCancelNotPending)
	}

	ok, err := s.reservationRepo.CancelPending(ctx, reservationID)
	if err != nil {
		logger.Error("[CancelReservation] cancel pending", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		// confirmed or cancelled between the read and the update
		return nil, errors.SetCustomError(constant.ErrCancelNotPending)
	}

	r.Status = constant.ReservationStatusCancelled
	s.invalidateStats(ctx, r.UserID, r.ProductOwnerID)
	s.publish(ctx, constant.EventReservationCancelled, model.ReservationEventPayload{
		ReservationID: reservationID,
		ProductID:     r.ProductID,
		CustomerID:    r.UserID,
		ActorID:       actor.UserID,
		Quantity:      r.Quantity,
		Status:        constant.ReservationStatusCancelled,
	})

	return s.reload(ctx, "[CancelReservation]", r), nil
}

// ExpireReservation cancels a reservation left pending past its TTL. It is a
// no-op for reservations that already left pending.
func (s *reservationAppImpl) ExpireReservation(ctx context.Context, reservationID uint64) error {
	r, err := s.getExisting(ctx, "[ExpireReservation]", reservationID)
	if err != nil {
		return err
	}
	if r.Status != constant.ReservationStatusPending {
		logger.Debug("[ExpireReservation] not pending, skipping", zap.Uint64("reservation_id", reservationID), zap.String("status", string(r.Status)))
		return nil
	}

	ok, err := s.reservationRepo.CancelPending(ctx, reservationID)
	if err != nil {
		logger.Error("[ExpireReservation] cancel pending", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil
	}

	logger.Info("[ExpireReservation] reservation expired", zap.Uint64("reservation_id", reservationID))
	s.invalidateStats(ctx, r.UserID, r.ProductOwnerID)
	s.publish(ctx, constant.EventReservationExpired, model.ReservationEventPayload{
		ReservationID: reservationID,
		ProductID:     r.ProductID,
		CustomerID:    r.UserID,
		Quantity:      r.Quantity,
		Status:        constant.ReservationStatusCancelled,
	})
	return nil
}

// UpdateReservationStatus overwrites the status directly. It skips the
// pending and stock checks of Confirm/Cancel and never touches stock.
func (s *reservationAppImpl) UpdateReservationStatus(ctx context.Context, reservationID uint64, actor model.Principal, status constant.ReservationStatus) (*model.ReservationDetail, error) {
	if !status.Valid() {
		return nil, errors.SetCustomError(constant.ErrInvalidReservationStatus)
	}

	r, err := s.getExisting(ctx, "[UpdateReservationStatus]", reservationID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && r.ProductOwnerID != actor.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, status); err != nil {
		logger.Error("[UpdateReservationStatus] update status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	logger.Warn("[UpdateReservationStatus] status overridden",
		zap.Uint64("reservation_id", reservationID),
		zap.Uint64("actor_id", actor.UserID),
		zap.String("from", string(r.Status)),
		zap.String("to", string(status)),
	)

	r.Status = status
	s.invalidateStats(ctx, r.UserID, r.ProductOwnerID)
	s.publish(ctx, constant.EventReservationStatusOverridden, model.ReservationEventPayload{
		ReservationID: reservationID,
		ProductID:     r.ProductID,
		CustomerID:    r.UserID,
		ActorID:       actor.UserID,
		Quantity:      r.Quantity,
		Status:        status,
	})

	return s.reload(ctx, "[UpdateReservationStatus]", r), nil
}

func (s *reservationAppImpl) UpdateReservation(ctx context.Context, reservationID uint64, actor model.Principal, req *model.UpdateReservationRequest) (*model.ReservationDetail, error) {
	r, err := s.getExisting(ctx, "[UpdateReservation]", reservationID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && r.UserID != actor.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	if r.Status != constant.ReservationStatusPending {
		return nil, errors.SetCustomError(constant.ErrInvalidReservationStatus)
	}

	updated := r.ReservationEntity
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, errors.SetCustomError(constant.ErrInvalidQuantity)
		}
		updated.Quantity = *req.Quantity
	}
	if req.Note != nil {
		updated.Note = *req.Note
	}
	if req.ShippingAddress != nil {
		updated.ShippingAddress = *req.ShippingAddress
	}

	ok, err := s.reservationRepo.UpdatePending(ctx, &updated)
	if err != nil {
		logger.Error("[UpdateReservation] update pending", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidReservationStatus)
	}

	r.ReservationEntity = updated
	return s.reload(ctx, "[UpdateReservation]", r), nil
}

func (s *reservationAppImpl) DeleteReservation(ctx context.Context, reservationID uint64, actor model.Principal) error {
	r, err := s.getExisting(ctx, "[DeleteReservation]", reservationID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin && r.UserID != actor.UserID && r.ProductOwnerID != actor.UserID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	if err := s.reservationRepo.Delete(ctx, reservationID); err != nil {
		if stderrors.Is(err, errNoRows) {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[DeleteReservation] delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.invalidateStats(ctx, r.UserID, r.ProductOwnerID)
	return nil
}

func (s *reservationAppImpl) GetReservation(ctx context.Context, reservationID uint64, actor model.Principal) (*model.ReservationDetail, error) {
	r, err := s.getExisting(ctx, "[GetReservation]", reservationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && r.UserID != actor.UserID && r.ProductOwnerID != actor.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	return r, nil
}

func (s *reservationAppImpl) ListMyReservations(ctx context.Context, actor model.Principal, filter model.ReservationFilter) (*model.ReservationListResponse, error) {
	filter.CustomerID = actor.UserID
	filter.ProductOwnerID = 0
	return s.list(ctx, "[ListMyReservations]", filter)
}

func (s *reservationAppImpl) ListMyProductReservations(ctx context.Context, actor model.Principal, filter model.ReservationFilter) (*model.ReservationListResponse, error) {
	filter.CustomerID = 0
	filter.ProductOwnerID = actor.UserID
	return s.list(ctx, "[ListMyProductReservations]", filter)
}

func (s *reservationAppImpl) ListProductReservations(ctx context.Context, productID uint64, actor model.Principal, filter model.ReservationFilter) (*model.ReservationListResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[ListProductReservations] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if !actor.IsAdmin && product.UserID != actor.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	filter.ProductID = productID
	filter.CustomerID = 0
	filter.ProductOwnerID = 0
	return s.list(ctx, "[ListProductReservations]", filter)
}

func (s *reservationAppImpl) list(ctx context.Context, op string, filter model.ReservationFilter) (*model.ReservationListResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errors.SetCustomError(constant.ErrInvalidReservationStatus)
	}
	if filter.Page <= 0 {
		filter.Page = defaultPage
	}
	if filter.PerPage <= 0 {
		filter.PerPage = defaultPerPage
	}

	items, total, err := s.reservationRepo.List(ctx, &filter)
	if err != nil {
		logger.Error(op+" error reservationRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ReservationListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

func (s *reservationAppImpl) GetStats(ctx context.Context, actor model.Principal) (*model.ReservationStats, error) {
	asCustomer, err := s.counts(ctx, redisrepo.CustomerStatsKey(actor.UserID), &model.ReservationFilter{CustomerID: actor.UserID})
	if err != nil {
		return nil, err
	}
	asOwner, err := s.counts(ctx, redisrepo.OwnerStatsKey(actor.UserID), &model.ReservationFilter{ProductOwnerID: actor.UserID})
	if err != nil {
		return nil, err
	}
	return &model.ReservationStats{AsCustomer: *asCustomer, AsOwner: *asOwner}, nil
}

// counts serves status counts from Redis when cached. Values are stored under
// the key's current generation, so a count computed before a concurrent
// invalidation is written to an orphaned key. Cache failures fall through to
// the database.
func (s *reservationAppImpl) counts(ctx context.Context, key string, filter *model.ReservationFilter) (*model.ReservationCounts, error) {
	cacheKey := ""
	if s.redisRepo != nil {
		cacheKey = s.statsCacheKey(ctx, key)
	}
	if cacheKey != "" {
		if cached, err := s.redisRepo.Get(ctx, cacheKey); err == nil {
			var c model.ReservationCounts
			if jerr := json.Unmarshal([]byte(cached), &c); jerr == nil {
				return &c, nil
			}
		} else if !stderrors.Is(err, redisrepo.ErrNil) {
			logger.Warn("[GetStats] redis get", zap.String("key", cacheKey), zap.String("error", err.Error()))
		}
	}

	rows, err := s.reservationRepo.CountByStatus(ctx, filter)
	if err != nil {
		logger.Error("[GetStats] count by status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	c := tally(rows)
	if cacheKey != "" && s.config != nil && s.config.Reservation.StatsCacheTTL > 0 {
		if b, err := json.Marshal(c); err == nil {
			if err := s.redisRepo.SetWithTTL(ctx, cacheKey, string(b), s.config.Reservation.StatsCacheTTL); err != nil {
				logger.Warn("[GetStats] redis set", zap.String("key", cacheKey), zap.String("error", err.Error()))
			}
		}
	}
	return &c, nil
}

// statsCacheKey returns "" when the generation cannot be read; the caller
// then skips the cache in both directions.
func (s *reservationAppImpl) statsCacheKey(ctx context.Context, key string) string {
	version, err := s.redisRepo.Get(ctx, redisrepo.StatsVersionKey(key))
	switch {
	case err == nil:
	case stderrors.Is(err, redisrepo.ErrNil):
		version = "0"
	default:
		logger.Warn("[GetStats] redis get version", zap.String("key", key), zap.String("error", err.Error()))
		return ""
	}
	return redisrepo.VersionedStatsKey(key, version)
}

func tally(rows []model.StatusCount) model.ReservationCounts {
	var c model.ReservationCounts
	for _, row := range rows {
		switch row.Status {
		case constant.ReservationStatusPending:
			c.Pending += row.Total
		case constant.ReservationStatusConfirmed:
			c.Confirmed += row.Total
		case constant.ReservationStatusCancelled:
			c.Cancelled += row.Total
		}
		c.Total += row.Total
	}
	return c
}
