package mq

import (
	"encoding/json"

	"github.com/streadway/amqp"

	"iso-settlement-api/internal/dal"
	"iso-settlement-api/internal/dto"
	"iso-settlement-api/internal/logger"
)

const exchange = "settlement_events"

// RejectedBatchMsg is the payload published for transactions that could not
// be aggregated into a cycle.
type RejectedBatchMsg struct {
	Run      dto.JobRun                `json:"run"`
	Rejected []dto.RejectedTransaction `json:"rejected"`
}

// OrderDispatchedMsg announces disbursement orders created by dispatch.
type OrderDispatchedMsg struct {
	IDMerchantSettlement uint64  `json:"idMerchantSettlement"`
	OrderID              *uint64 `json:"orderId,omitempty"`
	PixOrderID           *uint64 `json:"pixOrderId,omitempty"`
}

func publish(routingKey string, payload interface{}) {
	if dal.RabbitCh == nil {
		logger.Settlement.Warnf("[MQ] channel not initialized, dropping %s", routingKey)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Settlement.Errorf("[MQ] marshal %s failed: %v", routingKey, err)
		return
	}
	err = dal.RabbitCh.Publish(exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		logger.Settlement.Errorf("[MQ] publish %s failed: %v", routingKey, err)
	}
}

// PublishRejected emits the rejected portion of a batch on tx.rejected.
// Best effort: rejects were already logged by the aggregation service.
func PublishRejected(run dto.JobRun, rejected []dto.RejectedTransaction) {
	if len(rejected) == 0 {
		return
	}
	publish("tx.rejected", RejectedBatchMsg{Run: run, Rejected: rejected})
}

// PublishOrderDispatched emits order.dispatched for downstream disbursement.
func PublishOrderDispatched(msID uint64, orderID, pixOrderID *uint64) {
	publish("order.dispatched", OrderDispatchedMsg{
		IDMerchantSettlement: msID,
		OrderID:              orderID,
		PixOrderID:           pixOrderID,
	})
}
