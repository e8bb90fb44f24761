package repository

// storeConfig collects construction-time settings for MemStore.
type storeConfig struct {
	shardCount int
}

// Option applies a configuration option to the MemStore.
type Option func(*storeConfig)

// WithShardCount sets the number of shards in the store.
func WithShardCount(count int) Option {
	return func(c *storeConfig) {
		if count > 0 {
			c.shardCount = count
		}
	}
}
