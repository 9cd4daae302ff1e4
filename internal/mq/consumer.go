package mq

import (
	"encoding/json"
	"errors"

	"github.com/streadway/amqp"

	"iso-settlement-api/internal/dal"
	"iso-settlement-api/internal/dto"
	"iso-settlement-api/internal/logger"
	"iso-settlement-api/internal/settlement"
)

const txQueue = "settlement_tx"

// consumeMaxRetry bounds redelivery of conflicting batches before they are
// parked on the rejected queue.
const consumeMaxRetry = 5

// StartConsumers attaches the batch consumer to the settlement_tx queue.
// Blocks; run in a goroutine from main.
func StartConsumers(svc *settlement.Service) {
	if dal.RabbitCh == nil {
		logger.Settlement.Error("[MQ] channel not initialized, consumer not started")
		return
	}
	deliveries, err := dal.RabbitCh.Consume(txQueue, "settlement-worker", false, false, false, false, nil)
	if err != nil {
		logger.Settlement.Errorf("[MQ] consume %s failed: %v", txQueue, err)
		return
	}
	logger.Settlement.Infof("[MQ] consuming %s", txQueue)

	for d := range deliveries {
		handleDelivery(svc, d)
	}
	logger.Settlement.Warn("[MQ] delivery channel closed, consumer stopped")
}

func handleDelivery(svc *settlement.Service, d amqp.Delivery) {
	var req dto.ApplyBatchReq
	if err := json.Unmarshal(d.Body, &req); err != nil {
		// poison message, never retryable
		logger.Settlement.Errorf("[MQ] bad payload dropped: %v", err)
		_ = d.Ack(false)
		return
	}

	resp, err := svc.ApplyBatch(req)
	if err == nil {
		logger.Settlement.WithField("run_id", req.Run.RunID).
			Infof("[MQ] batch applied settlement=%d applied=%d duplicates=%d rejected=%d",
				resp.SettlementID, resp.Applied, resp.Duplicates, len(resp.Rejected))
		_ = d.Ack(false)
		return
	}

	if errors.Is(err, settlement.ErrAggregationConflict) {
		retries := retryCount(d)
		if retries < consumeMaxRetry {
			logger.Settlement.WithField("run_id", req.Run.RunID).
				Warnf("[MQ] conflict, requeue attempt %d", retries+1)
			// ack only once the retry copy is on the broker; a failed
			// republish falls back to broker redelivery
			if perr := republish(d.Body, retries+1); perr != nil {
				logger.Settlement.Errorf("[MQ] requeue failed, redelivering: %v", perr)
				_ = d.Nack(false, true)
				return
			}
			_ = d.Ack(false)
			return
		}
		logger.Settlement.WithField("run_id", req.Run.RunID).
			Errorf("[MQ] conflict after %d retries, parking batch", retries)
		parkOrRedeliver(d)
		return
	}

	// non-retryable failure, park for manual inspection
	logger.Settlement.WithField("run_id", req.Run.RunID).
		Errorf("[MQ] batch failed: %v", err)
	parkOrRedeliver(d)
}

func parkOrRedeliver(d amqp.Delivery) {
	if perr := publishParked(d.Body); perr != nil {
		logger.Settlement.Errorf("[MQ] park failed, redelivering: %v", perr)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func retryCount(d amqp.Delivery) int {
	if d.Headers == nil {
		return 0
	}
	switch v := d.Headers["x-retry-count"].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func republish(body []byte, retries int) error {
	if dal.RabbitCh == nil {
		return errors.New("channel not initialized")
	}
	return dal.RabbitCh.Publish(exchange, "tx.settle", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Headers:      amqp.Table{"x-retry-count": int32(retries)},
		Body:         body,
	})
}

func publishParked(body []byte) error {
	if dal.RabbitCh == nil {
		return errors.New("channel not initialized")
	}
	return dal.RabbitCh.Publish(exchange, "tx.rejected", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
