package config

// RedisConfig holds the connection settings for the revalidation publisher
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	// RevalidateChannel is the pub/sub channel the rendering layer listens
	// on for path invalidation hints.
	RevalidateChannel string `yaml:"revalidate_channel"`
}
