package dispatch

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"iso-settlement-api/internal/dao"
	"iso-settlement-api/internal/dto"
	"iso-settlement-api/internal/idgen"
	"iso-settlement-api/internal/logger"
	mainmodel "iso-settlement-api/internal/model/main"
	settlemodel "iso-settlement-api/internal/model/settlement"
)

var (
	// ErrOrderLocked means an order for this merchant settlement is already
	// in flight; only the disbursement collaborator releases the lock.
	ErrOrderLocked = errors.New("order already locked")
	// ErrRoutingNotFound means the customer has no active institution routing.
	ErrRoutingNotFound = errors.New("institution routing not found")
	// ErrNothingToDispatch means both legs net to zero.
	ErrNothingToDispatch = errors.New("nothing to dispatch")
	// ErrSettlementNotFound means the merchant settlement row is missing.
	ErrSettlementNotFound = errors.New("merchant settlement not found")
)

// OrderPublisher receives dispatched orders for downstream consumers.
type OrderPublisher func(msID uint64, orderID, pixOrderID *uint64)

// Dispatcher turns merchant settlement balances into disbursement orders.
// One outstanding order per merchant settlement and leg; the cooperative
// lock flag keeps concurrent dispatch cycles from double-paying.
type Dispatcher struct {
	mainDao   *dao.MainDao
	settleDao *dao.SettlementDao
	orderDao  *dao.OrderDao
	publish   OrderPublisher
}

func NewDispatcher(publish OrderPublisher) *Dispatcher {
	return &Dispatcher{
		mainDao:   dao.NewMainDao(),
		settleDao: dao.NewSettlementDao(),
		orderDao:  dao.NewOrderDao(),
		publish:   publish,
	}
}

func NewDispatcherWith(mainDao *dao.MainDao, settleDao *dao.SettlementDao, orderDao *dao.OrderDao, publish OrderPublisher) *Dispatcher {
	return &Dispatcher{mainDao: mainDao, settleDao: settleDao, orderDao: orderDao, publish: publish}
}

// Dispatch creates or re-arms the disbursement orders for one merchant
// settlement. The card leg carries net minus the PIX portion; the PIX leg
// carries the PIX net with its own protocol number and guid. New orders are
// born locked.
func (d *Dispatcher) Dispatch(msID uint64, date time.Time) (dto.DispatchResp, error) {
	ms, err := d.settleDao.GetMerchantSettlement(msID, date)
	if err != nil {
		return dto.DispatchResp{}, err
	}
	if ms == nil {
		return dto.DispatchResp{}, ErrSettlementNotFound
	}

	settlement, err := d.settleDao.GetByID(ms.IDSettlement, date)
	if err != nil {
		return dto.DispatchResp{}, err
	}
	if settlement == nil {
		return dto.DispatchResp{}, ErrSettlementNotFound
	}

	routing, err := d.mainDao.GetRouting(settlement.IDCustomer)
	if err != nil {
		return dto.DispatchResp{}, err
	}
	if routing == nil {
		return dto.DispatchResp{}, ErrRoutingNotFound
	}

	cardAmount := ms.NetSettlementAmount.Sub(ms.PixNetAmount)
	pixAmount := ms.PixNetAmount
	if !cardAmount.IsPositive() && !pixAmount.IsPositive() {
		return dto.DispatchResp{}, ErrNothingToDispatch
	}

	var resp dto.DispatchResp

	if cardAmount.IsPositive() {
		orderID, err := d.dispatchCard(ms, routing, cardAmount, date)
		if err != nil {
			return dto.DispatchResp{}, err
		}
		resp.OrderID = &orderID
	}

	if pixAmount.IsPositive() {
		pixOrderID, err := d.dispatchPix(ms, routing, pixAmount, date)
		if err != nil {
			return dto.DispatchResp{}, err
		}
		resp.PixOrderID = &pixOrderID
	}

	if d.publish != nil {
		d.publish(msID, resp.OrderID, resp.PixOrderID)
	}
	return resp, nil
}

func (d *Dispatcher) dispatchCard(ms *settlemodel.MerchantSettlement, routing *mainmodel.InstitutionRouting, amount decimal.Decimal, date time.Time) (uint64, error) {
	existing, err := d.orderDao.GetOrderForSettlement(ms.ID, date)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		if existing.Lock {
			return 0, ErrOrderLocked
		}
		ok, err := d.orderDao.TryLockOrder(existing.ID, amount, date)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrOrderLocked
		}
		logger.Dispatch.Infof("[DISPATCH] re-armed card order id=%d settlement=%d amount=%s", existing.ID, ms.ID, amount)
		return existing.ID, nil
	}

	order := &settlemodel.MerchantSettlementOrder{
		ID:                   idgen.New(),
		IDMerchantSettlement: ms.ID,
		IDPaymentInstitution: routing.IDPaymentInstitution,
		CompeCode:            routing.CompeCode,
		BankBranchNumber:     routing.BankBranchNumber,
		AccountNumber:        routing.AccountNumber,
		AccountDigit:         routing.AccountDigit,
		Amount:               amount,
		Lock:                 true,
		Active:               true,
	}
	if err := d.orderDao.CreateOrder(order, date); err != nil {
		return 0, err
	}
	logger.Dispatch.Infof("[DISPATCH] created card order id=%d settlement=%d amount=%s", order.ID, ms.ID, amount)
	return order.ID, nil
}

func (d *Dispatcher) dispatchPix(ms *settlemodel.MerchantSettlement, routing *mainmodel.InstitutionRouting, amount decimal.Decimal, date time.Time) (uint64, error) {
	existing, err := d.orderDao.GetPixOrderForSettlement(ms.ID, date)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		if existing.Lock {
			return 0, ErrOrderLocked
		}
		ok, err := d.orderDao.TryLockPixOrder(existing.ID, amount, ms.TransactionCount, date)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrOrderLocked
		}
		logger.Dispatch.Infof("[DISPATCH] re-armed pix order id=%d settlement=%d amount=%s", existing.ID, ms.ID, amount)
		return existing.ID, nil
	}

	order := &settlemodel.MerchantPixSettlementOrder{
		ID:                   idgen.New(),
		IDMerchantSettlement: ms.ID,
		IDPaymentInstitution: routing.IDPaymentInstitution,
		PixKey:               routing.PixKey,
		Amount:               amount,
		TransactionCount:     ms.TransactionCount,
		ProtocolNumber:       idgen.NewFrom("pix_protocol"),
		Guid:                 uuid.NewString(),
		Lock:                 true,
		Active:               true,
	}
	if err := d.orderDao.CreatePixOrder(order, date); err != nil {
		return 0, err
	}
	logger.Dispatch.Infof("[DISPATCH] created pix order id=%d settlement=%d amount=%s protocol=%d", order.ID, ms.ID, amount, order.ProtocolNumber)
	return order.ID, nil
}
