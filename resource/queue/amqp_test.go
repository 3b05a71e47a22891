package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/spiker/fick-server/lib"
)

func testWorker(cfg *lib.AMQPConfiguration) *Worker {
	return NewWorker(cfg, func(body []byte) ([]byte, error) {
		return body, nil
	}, logrus.NewEntry(logrus.StandardLogger()))
}

func TestQueueWorker_ReconnectDelay(t *testing.T) {
	assert.Equal(t, defaultReconnectDelay, testWorker(&lib.AMQPConfiguration{}).reconnectDelay())
	assert.Equal(t, 3*time.Second, testWorker(&lib.AMQPConfiguration{ReconnectDelay: 3}).reconnectDelay())
}

func TestQueueWorker_Run(t *testing.T) {
	t.Run("停止後は再接続しない", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := testWorker(&lib.AMQPConfiguration{Url: "amqp://localhost:5672/", RequestQueue: "fick.calculate.test"})

		dials := 0
		w.dial = func(url string) (*amqp.Connection, error) {
			dials++
			assert.Equal(t, "amqp://localhost:5672/", url)
			cancel()
			return nil, errors.New("connection refused")
		}

		assert.NoError(t, w.Run(ctx))
		assert.Equal(t, 1, dials)
	})

	t.Run("接続に失敗したら再接続する", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		w := testWorker(&lib.AMQPConfiguration{RequestQueue: "fick.calculate.test", ReconnectDelay: 1})

		dials := 0
		w.dial = func(url string) (*amqp.Connection, error) {
			dials++
			if dials == 2 {
				cancel()
			}
			return nil, errors.New("connection refused")
		}

		begin := time.Now()
		assert.NoError(t, w.Run(ctx))
		assert.Equal(t, 2, dials)
		assert.GreaterOrEqual(t, time.Since(begin), time.Second)
	})
}
