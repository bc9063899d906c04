package reservation

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	redisrepo "github.com/muhammadheryan/community-market/repository/redis"
	"github.com/muhammadheryan/community-market/thirdparty/rabbitmq"
	"github.com/muhammadheryan/community-market/utils/errors"
	"github.com/muhammadheryan/community-market/utils/logger"
	"go.uber.org/zap"
)

var errNoRows = sql.ErrNoRows

const publishTimeout = 2 * time.Second

func (s *reservationAppImpl) getExisting(ctx context.Context, op string, reservationID uint64) (*model.ReservationDetail, error) {
	r, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		logger.Error(op+" get reservation", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if r == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return r, nil
}

// reload reads the committed row back for the response. The mutation has
// already succeeded, so a failed read falls back to the in-memory copy.
func (s *reservationAppImpl) reload(ctx context.Context, op string, fallback *model.ReservationDetail) *model.ReservationDetail {
	r, err := s.reservationRepo.GetByID(ctx, fallback.ID)
	if err != nil || r == nil {
		if err != nil {
			logger.Warn(op+" reload reservation", zap.String("error", err.Error()))
		}
		return fallback
	}
	return r
}

// asCustomError passes workflow errors through and maps anything else
// (begin/commit failures) to an internal error.
func asCustomError(op string, err error) error {
	var ce errors.CustomError
	if stderrors.As(err, &ce) {
		return ce
	}
	logger.Error(op+" transaction", zap.String("error", err.Error()))
	return errors.SetCustomError(constant.ErrInternal)
}

func (s *reservationAppImpl) invalidateStats(ctx context.Context, customerID, ownerID uint64) {
	if s.redisRepo == nil {
		return
	}
	err := s.redisRepo.Incr(ctx,
		redisrepo.StatsVersionKey(redisrepo.CustomerStatsKey(customerID)),
		redisrepo.StatsVersionKey(redisrepo.OwnerStatsKey(ownerID)),
	)
	if err != nil {
		logger.Warn("[invalidateStats] redis incr", zap.String("error", err.Error()))
	}
}

func (s *reservationAppImpl) scheduleExpiration(r *model.ReservationEntity) {
	if s.scheduler == nil || s.config == nil || s.config.Reservation.PendingTTL <= 0 {
		return
	}
	msg := rabbitmq.ReservationExpirationMessage{
		ReservationID: r.ID,
		ProductID:     r.ProductID,
		ExpiresAt:     time.Now().Add(s.config.Reservation.PendingTTL),
	}
	if err := s.scheduler.ScheduleExpiration(msg); err != nil {
		logger.Error("[CreateReservation] schedule expiration", zap.Uint64("reservation_id", r.ID), zap.String("error", err.Error()))
	}
}

func (s *reservationAppImpl) publish(ctx context.Context, eventType constant.ReservationEventType, payload model.ReservationEventPayload) {
	if s.events == nil {
		return
	}
	// The change is committed; a client that hung up must not cancel its event.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.PublishReservationEvent(ctx, eventType, payload); err != nil {
		logger.Error("[publish] reservation event",
			zap.String("event_type", string(eventType)),
			zap.Uint64("reservation_id", payload.ReservationID),
			zap.String("error", err.Error()),
		)
	}
}
