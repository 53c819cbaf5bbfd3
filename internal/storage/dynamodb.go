package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item kinds stored in the fleet table
const (
	KindTruck   = "truck"
	KindDriver  = "driver"
	KindSeries  = "series"
	KindSummary = "summary"
)

// DynamoDBAPI interface for mocking
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// snapshotItem is one row of the fleet table. Seq keeps seed order, which
// Scan does not preserve.
type snapshotItem struct {
	ID      string            `dynamodbav:"id"`
	Kind    string            `dynamodbav:"kind"`
	Seq     int               `dynamodbav:"seq"`
	Truck   *Truck            `dynamodbav:"truck,omitempty"`
	Driver  *Driver           `dynamodbav:"driver,omitempty"`
	Series  *ChartSeries      `dynamodbav:"series,omitempty"`
	Summary *DashboardSummary `dynamodbav:"summary,omitempty"`
}

// DynamoDBSnapshotSource reads and writes a Snapshot as items of one table
type DynamoDBSnapshotSource struct {
	client    DynamoDBAPI
	tableName string
}

func NewDynamoDBSnapshotSource(client DynamoDBAPI, tableName string) *DynamoDBSnapshotSource {
	return &DynamoDBSnapshotSource{
		client:    client,
		tableName: tableName,
	}
}

// Load scans the whole table and assembles a Snapshot
func (d *DynamoDBSnapshotSource) Load(ctx context.Context) (*Snapshot, error) {
	var items []snapshotItem
	var startKey map[string]types.AttributeValue

	for {
		result, err := d.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(d.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan fleet table: %w", err)
		}

		for _, raw := range result.Items {
			var item snapshotItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal fleet item: %w", err)
			}
			items = append(items, item)
		}

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Seq < items[j].Seq
	})

	snapshot := &Snapshot{}
	for _, item := range items {
		switch item.Kind {
		case KindTruck:
			if item.Truck == nil {
				return nil, fmt.Errorf("item %s has no truck payload", item.ID)
			}
			snapshot.Trucks = append(snapshot.Trucks, *item.Truck)
		case KindDriver:
			if item.Driver == nil {
				return nil, fmt.Errorf("item %s has no driver payload", item.ID)
			}
			snapshot.Drivers = append(snapshot.Drivers, *item.Driver)
		case KindSeries:
			if item.Series == nil {
				return nil, fmt.Errorf("item %s has no series payload", item.ID)
			}
			snapshot.Series = append(snapshot.Series, *item.Series)
		case KindSummary:
			if item.Summary != nil {
				snapshot.Summary = *item.Summary
			}
		default:
			return nil, fmt.Errorf("item %s has unknown kind %q", item.ID, item.Kind)
		}
	}

	return snapshot, nil
}

// Write stores every record of snapshot as its own item
func (d *DynamoDBSnapshotSource) Write(ctx context.Context, snapshot Snapshot) error {
	var items []snapshotItem

	items = append(items, snapshotItem{ID: KindSummary, Kind: KindSummary, Summary: &snapshot.Summary})
	for i := range snapshot.Trucks {
		items = append(items, snapshotItem{ID: KindTruck + "#" + snapshot.Trucks[i].ID, Kind: KindTruck, Truck: &snapshot.Trucks[i]})
	}
	for i := range snapshot.Drivers {
		items = append(items, snapshotItem{ID: KindDriver + "#" + snapshot.Drivers[i].ID, Kind: KindDriver, Driver: &snapshot.Drivers[i]})
	}
	for i := range snapshot.Series {
		items = append(items, snapshotItem{ID: KindSeries + "#" + snapshot.Series[i].Name, Kind: KindSeries, Series: &snapshot.Series[i]})
	}

	for seq, item := range items {
		item.Seq = seq
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", item.ID, err)
		}

		_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(d.tableName),
			Item:      av,
		})
		if err != nil {
			return fmt.Errorf("failed to put %s: %w", item.ID, err)
		}
	}

	return nil
}
