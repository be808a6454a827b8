package services

import (
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/igorcrp/alpha-quant/helpers"
	"github.com/igorcrp/alpha-quant/interfaces"
	"github.com/igorcrp/alpha-quant/models"
)

// IndexCacheService keeps the market index quotes the dashboards show.
// It is injected where needed instead of living as package state, has a
// TTL, and an explicit Refresh the scheduler drives.
type IndexCacheService struct {
	source interfaces.IndexQuoteSource
	ttl    time.Duration
	now    func() time.Time

	mu          sync.RWMutex
	quotes      map[string]models.IndexQuote
	refreshedAt time.Time

	scheduler *cron.Cron
}

func NewIndexCacheService(source interfaces.IndexQuoteSource, ttl time.Duration) *IndexCacheService {
	return &IndexCacheService{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		quotes: map[string]models.IndexQuote{},
	}
}

// Refresh replaces the cached quotes wholesale.
func (ics *IndexCacheService) Refresh() error {
	quotes, err := ics.source.LatestIndexQuotes()
	if err != nil {
		return err
	}

	fresh := make(map[string]models.IndexQuote, len(quotes))
	for _, quote := range quotes {
		fresh[quote.Symbol] = quote
	}

	ics.mu.Lock()
	ics.quotes = fresh
	ics.refreshedAt = ics.now()
	ics.mu.Unlock()
	return nil
}

// Quotes returns the cached quotes sorted by symbol, refreshing first
// when the TTL has lapsed. A failed refresh serves the stale copy.
func (ics *IndexCacheService) Quotes() []models.IndexQuote {
	ics.mu.RLock()
	expired := ics.now().Sub(ics.refreshedAt) > ics.ttl
	ics.mu.RUnlock()

	if expired {
		if err := ics.Refresh(); err != nil {
			helpers.Logger.Warnln("index cache refresh failed: " + err.Error())
		}
	}

	ics.mu.RLock()
	defer ics.mu.RUnlock()
	quotes := make([]models.IndexQuote, 0, len(ics.quotes))
	for _, quote := range ics.quotes {
		quotes = append(quotes, quote)
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].Symbol < quotes[j].Symbol
	})
	return quotes
}

// StartScheduler refreshes on the given cron schedule until Stop.
func (ics *IndexCacheService) StartScheduler(schedule string) error {
	ics.scheduler = cron.New()
	_, err := ics.scheduler.AddFunc(schedule, func() {
		if err := ics.Refresh(); err != nil {
			helpers.Logger.Warnln("scheduled index refresh failed: " + err.Error())
		}
	})
	if err != nil {
		return err
	}
	ics.scheduler.Start()
	return nil
}

func (ics *IndexCacheService) StopScheduler() {
	if ics.scheduler != nil {
		ics.scheduler.Stop()
	}
}
