package settlement

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"iso-settlement-api/internal/config"
	"iso-settlement-api/internal/constant"
	"iso-settlement-api/internal/dal"
	"iso-settlement-api/internal/dao"
	"iso-settlement-api/internal/dto"
	"iso-settlement-api/internal/fee"
	"iso-settlement-api/internal/idgen"
	"iso-settlement-api/internal/logger"
	feemodel "iso-settlement-api/internal/model/fee"
	settlemodel "iso-settlement-api/internal/model/settlement"
)

var (
	// ErrAggregationConflict is returned after the configured number of
	// optimistic retries; the caller replays the identical batch.
	ErrAggregationConflict = errors.New("aggregation conflict, retry batch")
	// ErrSettlementFrozen rejects applies once every leg is terminal.
	ErrSettlementFrozen = errors.New("settlement frozen")
	// ErrCustomerInvalid rejects batches for unknown or inactive customers.
	ErrCustomerInvalid = errors.New("customer invalid")
)

// RejectPublisher receives transactions that could not be aggregated.
// Wired to the events exchange in main; aggregation stays auditable even
// when the broker is down because rejects are logged first.
type RejectPublisher func(run dto.JobRun, rejected []dto.RejectedTransaction)

type Service struct {
	mainDao   *dao.MainDao
	settleDao *dao.SettlementDao
	fees      *fee.Service
	rdb       *redis.Client
	publish   RejectPublisher
}

func NewService(fees *fee.Service, publish RejectPublisher) *Service {
	return &Service{
		mainDao:   dao.NewMainDao(),
		settleDao: dao.NewSettlementDao(),
		fees:      fees,
		rdb:       dal.RedisClient,
		publish:   publish,
	}
}

// NewServiceWith injects every collaborator; used by wiring that already
// holds daos.
func NewServiceWith(mainDao *dao.MainDao, settleDao *dao.SettlementDao, fees *fee.Service, rdb *redis.Client, publish RejectPublisher) *Service {
	return &Service{mainDao: mainDao, settleDao: settleDao, fees: fees, rdb: rdb, publish: publish}
}

// ApplyBatch applies one feed batch into the (customer, date) cycle.
// Safe to replay wholesale: slugs already applied are counted as duplicates
// and contribute nothing.
func (s *Service) ApplyBatch(req dto.ApplyBatchReq) (dto.ApplyBatchResp, error) {
	run := req.Run
	customer, err := s.mainDao.GetCustomer(run.IDCustomer)
	if err != nil {
		return dto.ApplyBatchResp{}, err
	}
	if customer == nil || !customer.IsActive {
		return dto.ApplyBatchResp{}, ErrCustomerInvalid
	}

	maxRetry := config.C.Settlement.ApplyMaxRetry
	var resp dto.ApplyBatchResp
	for attempt := 0; attempt < maxRetry; attempt++ {
		resp, err = s.applyOnce(run, req.Transactions)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, dao.ErrVersionConflict) {
			return dto.ApplyBatchResp{}, err
		}
		logger.Settlement.WithField("run_id", run.RunID).
			Warnf("[AGGREGATE] version conflict, attempt %d", attempt+1)
	}
	return dto.ApplyBatchResp{}, ErrAggregationConflict
}

func (s *Service) applyOnce(run dto.JobRun, txns []dto.Transaction) (dto.ApplyBatchResp, error) {
	date := run.SettlementDate

	settlement, err := s.settleDao.GetOrCreate(run.IDCustomer, date)
	if err != nil {
		return dto.ApplyBatchResp{}, err
	}
	if settlement.Frozen() {
		return dto.ApplyBatchResp{}, ErrSettlementFrozen
	}

	merchantRows, err := s.settleDao.ListMerchantSettlements(settlement.ID, date)
	if err != nil {
		return dto.ApplyBatchResp{}, err
	}

	fresh, duplicates, err := s.dedupe(settlement.ID, date, txns)
	if err != nil {
		return dto.ApplyBatchResp{}, err
	}

	entries, rejected := s.resolveBatch(fresh)

	state := CycleState{
		Settlement: settlement.Totals,
		Merchants:  make(map[uint64]settlemodel.Totals, len(merchantRows)),
	}
	rowByMerchant := make(map[uint64]*settlemodel.MerchantSettlement, len(merchantRows))
	for i := range merchantRows {
		row := &merchantRows[i]
		state.Merchants[row.IDMerchant] = row.Totals
		rowByMerchant[row.IDMerchant] = row
	}

	next := Apply(state, entries)

	settlement.Totals = next.Settlement
	var updated, created []*settlemodel.MerchantSettlement
	touched := make(map[uint64]bool, len(entries))
	for _, e := range entries {
		touched[e.Tx.MerchantID] = true
	}
	for merchantID := range touched {
		totals := next.Merchants[merchantID]
		if row, ok := rowByMerchant[merchantID]; ok {
			row.Totals = totals
			updated = append(updated, row)
		} else {
			created = append(created, &settlemodel.MerchantSettlement{
				ID:           idgen.New(),
				IDSettlement: settlement.ID,
				IDMerchant:   merchantID,
				Totals:       totals,
				Active:       true,
			})
		}
	}

	applied := make([]settlemodel.AppliedTransaction, 0, len(entries))
	for _, e := range entries {
		applied = append(applied, settlemodel.AppliedTransaction{
			ID:           idgen.New(),
			IDSettlement: settlement.ID,
			TxSlug:       e.Tx.Slug,
		})
	}

	if len(entries) > 0 {
		if err := s.settleDao.PersistApply(date, settlement, updated, created, applied); err != nil {
			return dto.ApplyBatchResp{}, err
		}
		s.cacheApplied(settlement.ID, applied)
	}

	if len(rejected) > 0 {
		for _, rj := range rejected {
			logger.Settlement.WithField("run_id", run.RunID).
				Warnf("[AGGREGATE] rejected tx slug=%s merchant=%d: %s", rj.Slug, rj.MerchantID, rj.Reason)
		}
		if s.publish != nil {
			s.publish(run, rejected)
		}
	}

	return dto.ApplyBatchResp{
		SettlementID: settlement.ID,
		Applied:      len(entries),
		Duplicates:   duplicates,
		Rejected:     rejected,
	}, nil
}

// dedupe drops slugs already applied in this cycle. Redis answers first;
// the DB unique key remains authoritative for anything Redis forgot.
func (s *Service) dedupe(settlementID uint64, date time.Time, txns []dto.Transaction) ([]dto.Transaction, int, error) {
	seen := make(map[string]bool, len(txns))
	unique := txns[:0:0]
	duplicates := 0
	for _, t := range txns {
		if seen[t.Slug] {
			duplicates++
			continue
		}
		seen[t.Slug] = true
		unique = append(unique, t)
	}

	remaining := unique
	if s.rdb != nil && len(unique) > 0 {
		members := make([]interface{}, len(unique))
		for i, t := range unique {
			members[i] = t.Slug
		}
		hits, err := s.rdb.SMIsMember(dal.RedisCtx, appliedKey(settlementID), members...).Result()
		if err == nil && len(hits) == len(unique) {
			remaining = remaining[:0:0]
			for i, t := range unique {
				if hits[i] {
					duplicates++
					continue
				}
				remaining = append(remaining, t)
			}
		}
	}

	if len(remaining) == 0 {
		return nil, duplicates, nil
	}
	slugs := make([]string, len(remaining))
	for i, t := range remaining {
		slugs[i] = t.Slug
	}
	appliedSet, err := s.settleDao.FilterApplied(settlementID, date, slugs)
	if err != nil {
		return nil, 0, err
	}
	fresh := remaining[:0:0]
	for _, t := range remaining {
		if appliedSet[t.Slug] {
			duplicates++
			continue
		}
		fresh = append(fresh, t)
	}
	return fresh, duplicates, nil
}

// resolveBatch pairs each transaction with its pricing. Adjustment kinds
// need no resolution; sales and anticipations that cannot resolve are
// rejected, never silently skipped.
func (s *Service) resolveBatch(txns []dto.Transaction) ([]Entry, []dto.RejectedTransaction) {
	trees := make(map[uint64]*feemodel.Tree)
	var entries []Entry
	var rejected []dto.RejectedTransaction

	for _, t := range txns {
		if t.Type == "" {
			t.Type = dto.TxSale
		}
		switch t.Type {
		case dto.TxCreditAdjustment, dto.TxDebitAdjustment, dto.TxRestitution:
			entries = append(entries, Entry{Tx: t})
			continue
		}

		tree, ok := trees[t.MerchantID]
		if !ok {
			loaded, err := s.fees.LoadTreeForMerchant(t.MerchantID)
			if err != nil {
				rejected = append(rejected, dto.RejectedTransaction{
					Slug:       t.Slug,
					MerchantID: t.MerchantID,
					Code:       constant.CodeFeeRootNotFound,
					Reason:     err.Error(),
				})
				continue
			}
			tree = loaded
			trees[t.MerchantID] = tree
		}

		resolved, err := s.fees.Resolver().Resolve(tree, dto.ResolveFeeReq{
			MerchantID:   t.MerchantID,
			Brand:        t.Brand,
			ProductType:  t.ProductType,
			Installments: t.Installments,
			CardPresent:  t.CardPresent,
			IsPix:        t.IsPix,
		})
		if err != nil {
			rejected = append(rejected, dto.RejectedTransaction{
				Slug:       t.Slug,
				MerchantID: t.MerchantID,
				Code:       rejectCode(err),
				Reason:     err.Error(),
			})
			continue
		}
		entries = append(entries, Entry{Tx: t, Fee: resolved})
	}
	return entries, rejected
}

func rejectCode(err error) int {
	switch {
	case errors.Is(err, fee.ErrUnknownBrand):
		return constant.CodeUnknownBrand
	case errors.Is(err, fee.ErrUnknownProductType):
		return constant.CodeUnknownProductType
	case errors.Is(err, fee.ErrFeeRootNotFound):
		return constant.CodeFeeRootNotFound
	default:
		return constant.CodeTransactionRejected
	}
}

func (s *Service) cacheApplied(settlementID uint64, applied []settlemodel.AppliedTransaction) {
	if s.rdb == nil || len(applied) == 0 {
		return
	}
	members := make([]interface{}, len(applied))
	for i, a := range applied {
		members[i] = a.TxSlug
	}
	key := appliedKey(settlementID)
	pipe := s.rdb.Pipeline()
	pipe.SAdd(dal.RedisCtx, key, members...)
	pipe.Expire(dal.RedisCtx, key, time.Duration(config.C.Settlement.AppliedSetTTLHours)*time.Hour)
	if _, err := pipe.Exec(dal.RedisCtx); err != nil {
		// best effort only, the DB unique key still protects replays
		logger.Settlement.Warnf("[AGGREGATE] applied-set cache write failed: %v", err)
	}
}

// GetView returns a settlement with its merchant breakdown.
func (s *Service) GetView(id uint64, date time.Time) (*dto.SettlementView, error) {
	settlement, err := s.settleDao.GetByID(id, date)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, nil
	}
	merchants, err := s.settleDao.ListMerchantSettlements(id, date)
	if err != nil {
		return nil, err
	}
	return &dto.SettlementView{Settlement: *settlement, Merchants: merchants}, nil
}

func appliedKey(settlementID uint64) string {
	return "iso:applied:" + strconv.FormatUint(settlementID, 10)
}
