package transcript

import "time"

type Config struct {
	MinLen       int
	MaxHistory   int
	FlushTimeout time.Duration
}
