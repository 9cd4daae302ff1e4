package dal

import (
	"log"

	"iso-settlement-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("settlement_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("settlement_tx", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare settlement_tx failed: %v", err)
	}
	if _, err := ch.QueueDeclare("settlement_tx_rejected", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare settlement_tx_rejected failed: %v", err)
	}
	if err := ch.QueueBind("settlement_tx", "tx.settle", "settlement_events", false, nil); err != nil {
		log.Fatalf("queue bind settlement_tx failed: %v", err)
	}
	if err := ch.QueueBind("settlement_tx_rejected", "tx.rejected", "settlement_events", false, nil); err != nil {
		log.Fatalf("queue bind settlement_tx_rejected failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
