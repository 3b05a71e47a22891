package queue

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/spiker/fick-server/lib"
)

const (
	defaultReconnectDelay = 5 * time.Second
	publishTimeout        = 30 * time.Second
	contentTypeJSON       = "application/json"
)

var (
	errDeliveriesClosed = errors.New("delivery channel closed by server")
)

// 受信したメッセージ本文から応答本文を作る。
// エラーを返した場合、メッセージは再投入せずに破棄する。
type Handler func(body []byte) ([]byte, error)

// リクエストキューを購読し、ReplyToに応答を返すワーカー。
type Worker struct {
	config  *lib.AMQPConfiguration
	handler Handler
	log     *logrus.Entry
	dial    func(url string) (*amqp.Connection, error)
}

func NewWorker(config *lib.AMQPConfiguration, handler Handler, log *logrus.Entry) *Worker {
	return &Worker{
		config:  config,
		handler: handler,
		log:     log.WithField("queue", config.RequestQueue),
		dial:    amqp.Dial,
	}
}

func (w *Worker) reconnectDelay() time.Duration {
	if w.config.ReconnectDelay > 0 {
		return time.Duration(w.config.ReconnectDelay) * time.Second
	}
	return defaultReconnectDelay
}

// ctxがキャンセルされるまで購読を続ける。接続が切れた場合は一定時間後に再接続する。
func (w *Worker) Run(ctx context.Context) error {
	for {
		err := w.serve(ctx)

		if ctx.Err() != nil {
			w.log.Info("worker stopped")
			return nil
		}

		w.log.WithError(err).Warnf("connection lost. Reconnecting in %s...", w.reconnectDelay())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.reconnectDelay()):
		}
	}
}

func (w *Worker) serve(ctx context.Context) error {
	conn, err := w.dial(w.config.Url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		w.config.RequestQueue, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		return err
	}

	if w.config.Prefetch > 0 {
		if err := ch.Qos(w.config.Prefetch, 0, false); err != nil {
			return err
		}
	}

	deliveries, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		false,  // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return err
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	w.log.Info("consuming requests")

	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-closed:
			if e == nil {
				return errDeliveriesClosed
			}
			return e
		case d, ok := <-deliveries:
			if !ok {
				return errDeliveriesClosed
			}
			w.handle(ctx, ch, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, ch *amqp.Channel, d amqp.Delivery) {
	logger := w.log.WithFields(logrus.Fields{
		"correlation_id": d.CorrelationId,
		"reply_to":       d.ReplyTo,
	})

	response, err := w.handler(d.Body)
	if err != nil {
		logger.WithError(err).Error("failed to handle request")
		if e := d.Nack(false, false); e != nil {
			logger.WithError(e).Warn("failed to nack")
		}
		return
	}

	if len(d.ReplyTo) == 0 {
		logger.Warn("request without reply_to is dropped")
		if e := d.Ack(false); e != nil {
			logger.WithError(e).Warn("failed to ack")
		}
		return
	}

	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(
		pctx,
		"",        // exchange
		d.ReplyTo, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:   contentTypeJSON,
			CorrelationId: d.CorrelationId,
			Body:          response,
		},
	)
	if err != nil {
		logger.WithError(err).Error("failed to publish response")
		// 応答できなかったリクエストは再投入する。
		if e := d.Nack(false, true); e != nil {
			logger.WithError(e).Warn("failed to nack")
		}
		return
	}

	if e := d.Ack(false); e != nil {
		logger.WithError(e).Warn("failed to ack")
	}

	logger.Debug("response published")
}
