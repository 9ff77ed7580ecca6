// FilePath: internal/repository/rediscache/rediscache.latest.go
package rediscache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/itsatony/fieldhub/internal/config"
	"github.com/itsatony/fieldhub/internal/errors"
	"github.com/itsatony/fieldhub/internal/models"
	"github.com/itsatony/fieldhub/internal/repository"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// LatestRecordCache keeps the newest record of every device under
// "<prefix>:device:last:<dispositivo_id>" with a TTL, so silent devices age out.
type LatestRecordCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// storeNewer writes ARGV[1] unless the cached record carries a larger id.
// ARGV[2] is the incoming id, ARGV[3] the TTL in milliseconds (0 keeps no expiry).
var storeNewer = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
	local ok, decoded = pcall(cjson.decode, current)
	if ok and type(decoded) == 'table' then
		local id = tonumber(decoded['id'])
		if id and id > tonumber(ARGV[2]) then
			return 0
		end
	end
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// NewClient connects to redis and verifies the connection
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewLatestRecordCache(client redis.Cmdable, cfg config.RedisConfig) *LatestRecordCache {
	return &LatestRecordCache{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}
}

// Store caches record as its device's latest unless a record with a larger id is
// already cached, so concurrent ingests cannot roll the entry back. Records without
// a device id are skipped.
func (c *LatestRecordCache) Store(ctx context.Context, record *models.SensorRecord) error {
	if record.DeviceID == nil || *record.DeviceID == "" {
		return nil
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return errors.NewInternalError("failed to encode record for cache", err)
	}
	key := c.key(*record.DeviceID)
	written, err := storeNewer.Run(ctx, c.client, []string{key}, string(payload), record.ID, c.ttl.Milliseconds()).Int()
	if err != nil {
		return errors.NewUnavailableError("failed to cache latest record", err)
	}
	if written == 0 {
		nuts.L.Debugf("[LatestCache] Kept newer record for %s over id %d", key, record.ID)
	}
	return nil
}

// Get returns the cached record of deviceID or a not-found error on a miss
func (c *LatestRecordCache) Get(ctx context.Context, deviceID string) (*models.SensorRecord, error) {
	payload, err := c.client.Get(ctx, c.key(deviceID)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, errors.NewNotFoundError("device not cached", repository.ErrNotFound)
		}
		return nil, errors.NewUnavailableError("failed to read latest record cache", err)
	}

	record := &models.SensorRecord{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, errors.NewInternalError("failed to decode cached record", err)
	}
	return record, nil
}

func (c *LatestRecordCache) key(deviceID string) string {
	return fmt.Sprintf("%s:device:last:%s", c.prefix, deviceID)
}
