package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	reporterrors "hrms-lite/internal/report/errors"
	"hrms-lite/internal/shared/cachekey"
	"hrms-lite/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultCacheTTL = 5 * time.Minute

type Service interface {
	Summary(ctx context.Context, filter SummaryFilter) ([]Summary, error)
	Dashboard(ctx context.Context, date string) (DailySnapshot, error)
}

// Options tunes caching and decides which calendar day "today" is.
type Options struct {
	CacheTTL time.Duration
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	roster  RosterReader
	records RecordReader
	rdb     *redis.Client
	sf      *singleflight.Group
	ttl     time.Duration
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(
	roster RosterReader,
	records RecordReader,
	rdb *redis.Client,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		roster:  roster,
		records: records,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		ttl:     opts.CacheTTL,
		loc:     opts.Location,
		now:     opts.Now,
		logger:  l,
	}
}

func (s *service) Summary(ctx context.Context, filter SummaryFilter) ([]Summary, error) {
	filter = filter.normalize()
	s.logger.Debug("attendance summary requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("start_date", filter.StartDate),
		zap.String("end_date", filter.EndDate),
		zap.String("employee_id", filter.EmployeeID),
	)
	if err := validateQuery(filter); err != nil {
		return nil, err
	}

	return cached(ctx, s, filter.cacheField(), func(ctx context.Context) ([]Summary, error) {
		roster, records, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		records = FilterByEmployee(FilterByDateRange(records, filter.StartDate, filter.EndDate), filter.EmployeeID)
		return SummarizeByEmployee(rosterFor(roster, filter.EmployeeID), records), nil
	})
}

// Dashboard computes the snapshot for date, or for today in the configured
// timezone when date is empty.
func (s *service) Dashboard(ctx context.Context, date string) (DailySnapshot, error) {
	date = strings.TrimSpace(date)
	if err := validateQuery(DashboardQuery{Date: date}); err != nil {
		return DailySnapshot{}, err
	}
	if date == "" {
		date = s.now().In(s.loc).Format("2006-01-02")
	}
	s.logger.Debug("dashboard requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("date", date),
	)

	return cached(ctx, s, "dashboard:"+date, func(ctx context.Context) (DailySnapshot, error) {
		roster, records, err := s.load(ctx)
		if err != nil {
			return DailySnapshot{}, err
		}
		return ComputeDailySnapshot(roster, records, date), nil
	})
}

// load reads the roster and the record set concurrently. If either read
// fails the whole load fails; no partial data reaches the engine.
func (s *service) load(ctx context.Context) ([]Employee, []Record, error) {
	var (
		roster  []Employee
		records []Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.roster.Roster(gctx)
		if err != nil {
			return fmt.Errorf("fetch roster: %w", err)
		}
		roster = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.records.Records(gctx)
		if err != nil {
			return fmt.Errorf("fetch records: %w", err)
		}
		records = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("report source fetch failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, nil, reporterrors.ErrSourceUnavailable.WithCause(err)
	}
	return roster, records, nil
}

// generation returns the current snapshot generation, or "" when the cache
// is disabled or unreachable.
func (s *service) generation(ctx context.Context) string {
	if s.rdb == nil {
		return ""
	}
	gen, err := s.rdb.Get(ctx, cachekey.ReportGeneration).Result()
	if errors.Is(err, redis.Nil) {
		return "0"
	}
	if err != nil {
		s.logger.Warn("report cache unavailable", zap.Error(err))
		return ""
	}
	return gen
}

func cached[T any](ctx context.Context, s *service, field string, compute func(context.Context) (T, error)) (T, error) {
	gen := s.generation(ctx)
	key := cachekey.ReportSnapshot(gen, field)

	if gen != "" {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var v T
			if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
				return v, nil
			}
			s.logger.Warn("discarding undecodable report snapshot", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		res, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		if gen != "" {
			if payload, err := json.Marshal(res); err == nil {
				if err := s.rdb.Set(ctx, key, string(payload), s.ttl).Err(); err != nil {
					s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return res, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
