package slots

import (
	"context"
	"fmt"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/responses"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type slotUsecase struct {
	BookingRepository contracts.BookingRepository
	RedisRepository   contracts.RedisRepository
	Schedule          *Schedule
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
	now               func() time.Time
}

func NewSlotUsecase(
	bookingRepository contracts.BookingRepository,
	redisRepository contracts.RedisRepository,
	schedule *Schedule,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SlotUsecase {
	return &slotUsecase{
		BookingRepository: bookingRepository,
		RedisRepository:   redisRepository,
		Schedule:          schedule,
		InternalConfig:    internalConfig,
		Log:               logger,
		now:               time.Now,
	}
}

func (uc *slotUsecase) GetSlots(ctx context.Context, date string) ([]responses.DaySlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.GetSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotDateKey, date),
	)

	days, err := uc.requestedDays(date)
	if err != nil {
		uc.Log.Error("slotUsecase.GetSlots invalid date",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotDateKey, date),
			zap.Error(err),
		)
		return nil, err
	}

	result, err := uc.buildDaySlots(ctx, days)
	if err != nil {
		uc.Log.Error("slotUsecase.GetSlots error calling BookingRepository.FindConfirmedSlots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("slotUsecase.GetSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

func (uc *slotUsecase) EnsureBookable(ctx context.Context, date, slot string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	day, err := utils.ParseDate(date, uc.Schedule.Location())
	if err != nil {
		return "", exceptions.ErrInvalidDate(err, date)
	}

	label, ok := uc.Schedule.Resolve(day, slot)
	if !ok {
		return "", exceptions.ErrSlotNotOffered(nil, date, slot)
	}

	if !uc.Schedule.Start(day, label).After(uc.now()) {
		return "", exceptions.ErrSlotPassed(nil, date, label)
	}

	booked, err := uc.BookingRepository.FindConfirmedSlots(ctx, []string{date})
	if err != nil {
		uc.Log.Error("slotUsecase.EnsureBookable error calling BookingRepository.FindConfirmedSlots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}
	if booked[date][label] {
		return "", exceptions.ErrSlotAlreadyBooked(nil, date, label)
	}

	return label, nil
}

func (uc *slotUsecase) GetNextAvailability(ctx context.Context) (*responses.NextAvailability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	now := uc.now().In(uc.Schedule.Location())
	cacheKey := uc.nextAvailabilityCacheKey(now)

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("slotUsecase.GetNextAvailability cache read failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	} else if cached != "" {
		result := new(responses.NextAvailability)
		if json.Unmarshal([]byte(cached), result) == nil {
			return result, nil
		}
	}

	lookahead := uc.InternalConfig.Clinic.NextAvailabilityDays
	if lookahead <= 0 {
		lookahead = 1
	}
	days := consecutiveDays(now, lookahead)
	daySlots, err := uc.buildDaySlots(ctx, days)
	if err != nil {
		uc.Log.Error("slotUsecase.GetNextAvailability error building slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &responses.NextAvailability{Display: constvars.NextAvailabilityNoneDisplay}
	for i, day := range daySlots {
		for _, slot := range day.Slots {
			if slot.Booked || slot.Passed {
				continue
			}
			result = &responses.NextAvailability{
				Display: formatNextAvailability(now, days[i], uc.Schedule.Start(days[i], slot.Time)),
				Date:    day.Date,
				Time:    slot.Time,
			}
			break
		}
		if result.Date != "" {
			break
		}
	}

	err = uc.RedisRepository.Set(ctx, cacheKey, result, uc.InternalConfig.Clinic.NextAvailabilityTTL)
	if err != nil {
		uc.Log.Warn("slotUsecase.GetNextAvailability cache write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}

	uc.Log.Info("slotUsecase.GetNextAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("display", result.Display),
	)
	return result, nil
}

func (uc *slotUsecase) InvalidateNextAvailability(ctx context.Context) error {
	cacheKey := uc.nextAvailabilityCacheKey(uc.now().In(uc.Schedule.Location()))
	return uc.RedisRepository.Delete(ctx, cacheKey)
}

func (uc *slotUsecase) requestedDays(date string) ([]time.Time, error) {
	if date == "" {
		window := uc.InternalConfig.Clinic.SlotWindowDays
		if window <= 0 {
			window = 1
		}
		return consecutiveDays(uc.now().In(uc.Schedule.Location()), window), nil
	}

	day, err := utils.ParseDate(date, uc.Schedule.Location())
	if err != nil {
		return nil, exceptions.ErrInvalidDate(err, date)
	}
	return []time.Time{day}, nil
}

func (uc *slotUsecase) buildDaySlots(ctx context.Context, days []time.Time) ([]responses.DaySlots, error) {
	dates := make([]string, len(days))
	for i, day := range days {
		dates[i] = utils.FormatDate(day)
	}

	booked, err := uc.BookingRepository.FindConfirmedSlots(ctx, dates)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	result := make([]responses.DaySlots, 0, len(days))
	for i, day := range days {
		labels := uc.Schedule.Labels(day)
		slots := make([]responses.Slot, 0, len(labels))
		for _, label := range labels {
			slots = append(slots, responses.Slot{
				Time:   label,
				Booked: booked[dates[i]][label],
				Passed: !uc.Schedule.Start(day, label).After(now),
			})
		}
		result = append(result, responses.DaySlots{Date: dates[i], Slots: slots})
	}
	return result, nil
}

func (uc *slotUsecase) nextAvailabilityCacheKey(now time.Time) string {
	return fmt.Sprintf("%s:%s", constvars.RedisKeyNextAvailabilityCache, utils.FormatDate(now))
}

func consecutiveDays(from time.Time, count int) []time.Time {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	days := make([]time.Time, count)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func formatNextAvailability(now, day, start time.Time) string {
	clock := start.Format(constvars.DisplayTimeLayout)
	switch {
	case utils.SameDay(day, now):
		return "Today, " + clock
	case utils.SameDay(day, now.AddDate(0, 0, 1)):
		return "Tomorrow, " + clock
	default:
		return day.Format(constvars.DisplayDayShort) + ", " + clock
	}
}
