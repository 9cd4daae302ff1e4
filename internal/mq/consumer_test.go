package mq

import (
	"testing"

	"github.com/streadway/amqp"
)

func TestRetryCount(t *testing.T) {
	cases := []struct {
		name string
		d    amqp.Delivery
		want int
	}{
		{"no headers", amqp.Delivery{}, 0},
		{"missing key", amqp.Delivery{Headers: amqp.Table{}}, 0},
		{"int32", amqp.Delivery{Headers: amqp.Table{"x-retry-count": int32(3)}}, 3},
		{"int64", amqp.Delivery{Headers: amqp.Table{"x-retry-count": int64(4)}}, 4},
		{"int", amqp.Delivery{Headers: amqp.Table{"x-retry-count": 2}}, 2},
		{"garbage", amqp.Delivery{Headers: amqp.Table{"x-retry-count": "seven"}}, 0},
	}
	for _, c := range cases {
		if got := retryCount(c.d); got != c.want {
			t.Errorf("%s: retryCount = %d, want %d", c.name, got, c.want)
		}
	}
}
