package config

// Notify каналы доставки события о продаже. Журнал пишется всегда.
type Notify struct {
	// RedisEnabled публикация в Redis Pub/Sub и стрим.
	RedisEnabled bool   `env:"NOTIFY_REDIS_ENABLED" envDefault:"false"`
	RedisChannel string `env:"NOTIFY_REDIS_CHANNEL" envDefault:"dutch-market:auction-ended"`
	RedisStream  string `env:"NOTIFY_REDIS_STREAM" envDefault:"dutch-market:auction-ended:stream"`

	// QueueEnabled доставка в Telegram через очередь asynq.
	QueueEnabled     bool   `env:"NOTIFY_QUEUE_ENABLED" envDefault:"false"`
	QueueName        string `env:"NOTIFY_QUEUE_NAME" envDefault:"notifications"`
	QueueConcurrency int    `env:"NOTIFY_QUEUE_CONCURRENCY" envDefault:"4"`
	MaxRetry         int    `env:"NOTIFY_MAX_RETRY" envDefault:"10"`

	TelegramToken  string `env:"BOT_TOKEN" json:"-"`
	TelegramChatID int64  `env:"BOT_CHAT_ID"`
}
