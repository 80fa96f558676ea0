package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ec5/ec5-api/internal/domain"
)

const (
	geocodeKey     = "query"
	geocodeTTLAttr = "expires_at"
)

// GeocodeCache stores upstream geocoder bodies keyed by normalised query.
// Items carry an expires_at epoch so DynamoDB TTL can reap them.
type GeocodeCache struct {
	client    *dynamodb.Client
	tableName string
	now       func() time.Time
}

func NewGeocodeCache(client *dynamodb.Client, tableName string) *GeocodeCache {
	return &GeocodeCache{client: client, tableName: tableName, now: time.Now}
}

// Get returns the cached result for query, or domain.ErrNotFound when absent
// or expired. TTL deletion is lazy, so expiry is checked here as well.
func (c *GeocodeCache) Get(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key:       strKey(geocodeKey, query),
	})
	if err != nil {
		return nil, fmt.Errorf("get geocode item: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("geocode %q: %w", query, domain.ErrNotFound)
	}
	var res domain.GeocodeResult
	if err := attributevalue.UnmarshalMap(out.Item, &res); err != nil {
		return nil, fmt.Errorf("unmarshal geocode item: %w", err)
	}
	if expired(&res, c.now()) {
		return nil, fmt.Errorf("geocode %q expired: %w", query, domain.ErrNotFound)
	}
	return &res, nil
}

// Put stores payload for query for ttl.
func (c *GeocodeCache) Put(ctx context.Context, query, payload string, ttl time.Duration) error {
	item, err := cacheItem(query, payload, c.now(), ttl)
	if err != nil {
		return err
	}
	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put geocode item: %w", err)
	}
	return nil
}

func cacheItem(query, payload string, now time.Time, ttl time.Duration) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(domain.GeocodeResult{
		Query:     query,
		Payload:   payload,
		ExpiresAt: now.Add(ttl).Unix(),
		CachedAt:  now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal geocode item: %w", err)
	}
	return item, nil
}

func expired(res *domain.GeocodeResult, now time.Time) bool {
	return res.ExpiresAt > 0 && now.Unix() >= res.ExpiresAt
}
