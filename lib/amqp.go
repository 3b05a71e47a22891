package lib

import (
	"fmt"
	"net/url"
)

// RabbitMQ設定。
type AMQPConfiguration struct {
	Url          string
	RequestQueue string `envconfig:"REQUEST_QUEUE"`
	Prefetch     int
	// 再接続までの待機時間(秒)。
	ReconnectDelay int `envconfig:"RECONNECT_DELAY"`
}

func (cfg *AMQPConfiguration) String() string {
	return fmt.Sprintf(`[AMQP]
Url:          %v
RequestQueue: %v
Prefetch:     %v`, redactURL(cfg.Url), cfg.RequestQueue, cfg.Prefetch)
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
