package dynamo

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ec5/ec5-api/internal/config"
	"github.com/ec5/ec5-api/internal/pkg/logger"
)

// Bootstrap creates the cache tables if they don't already exist.
// Safe to call on every startup; existing tables are skipped.
func Bootstrap(ctx context.Context, client *dynamodb.Client, tables config.DynamoTables, log logger.Logger) {
	createTable(ctx, client, log, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.GeocodeCache),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(geocodeKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(geocodeKey), KeyType: types.KeyTypeHash},
		},
	})
	enableTTL(ctx, client, log, tables.GeocodeCache, geocodeTTLAttr)
}

func createTable(ctx context.Context, client *dynamodb.Client, log logger.Logger, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		// ResourceInUseException means the table already exists.
		var riue *types.ResourceInUseException
		if !errors.As(err, &riue) {
			log.Critical("could not create table", map[string]any{"table": *input.TableName, "error": err})
		}
		return
	}
	log.Info("created table", map[string]any{"table": *input.TableName})
}

func enableTTL(ctx context.Context, client *dynamodb.Client, log logger.Logger, tableName, ttlAttr string) {
	_, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(tableName),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			Enabled:       aws.Bool(true),
			AttributeName: aws.String(ttlAttr),
		},
	})
	if err != nil {
		log.Info("could not enable TTL", map[string]any{"table": tableName, "error": err})
	}
}
