package db

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/catalog"
	"github.com/rlackeyseattle/vynl-pro/model"
)

// BatchGetItem takes at most 100 keys per call.
const maxBatchKeys = 100

// DynamoCatalog reads songs and setlists from two DynamoDB tables keyed
// by "PK".
type DynamoCatalog struct {
	client        dynamodbiface.DynamoDBAPI
	songsTable    string
	setlistsTable string
}

func NewDynamoCatalog(client dynamodbiface.DynamoDBAPI, songsTable string, setlistsTable string) *DynamoCatalog {
	return &DynamoCatalog{
		client:        client,
		songsTable:    songsTable,
		setlistsTable: setlistsTable,
	}
}

func Connect(endpoint string, region string, songsTable string, setlistsTable string) (*DynamoCatalog, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewDynamoCatalog(dynamodb.New(sess), songsTable, setlistsTable), nil
}

func (d *DynamoCatalog) scan(ctx context.Context, table string, each func(map[string]*dynamodb.AttributeValue) error) error {
	var inner error
	err := d.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{TableName: aws.String(table)},
		func(page *dynamodb.ScanOutput, lastPage bool) bool {
			for _, item := range page.Items {
				if inner = each(item); inner != nil {
					return false
				}
			}
			return true
		})
	if err != nil {
		return errors.Wrapf(err, "error from DynamoDB scanning %v", table)
	}
	return inner
}

func (d *DynamoCatalog) Songs(ctx context.Context) ([]model.Song, error) {
	var res []model.Song
	err := d.scan(ctx, d.songsTable, func(item map[string]*dynamodb.AttributeValue) error {
		var s model.Song
		if err := dynamodbattribute.UnmarshalMap(item, &s); err != nil {
			return errors.Wrap(err, "could not decode song")
		}
		res = append(res, s)
		return nil
	})
	return res, err
}

func (d *DynamoCatalog) Setlists(ctx context.Context) ([]model.SetlistSummary, error) {
	var res []model.SetlistSummary
	err := d.scan(ctx, d.setlistsTable, func(item map[string]*dynamodb.AttributeValue) error {
		var sl model.StoredSetlist
		if err := dynamodbattribute.UnmarshalMap(item, &sl); err != nil {
			return errors.Wrap(err, "could not decode setlist")
		}
		res = append(res, sl.Summary())
		return nil
	})
	return res, err
}

func (d *DynamoCatalog) Setlist(ctx context.Context, id string) (model.Setlist, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.setlistsTable),
		Key:       pk(id),
	})
	if err != nil {
		return model.Setlist{}, errors.Wrapf(err, "error from DynamoDB getting setlist %q", id)
	}
	if len(out.Item) == 0 {
		return model.Setlist{}, errors.Wrapf(catalog.ErrNotFound, "setlist %q", id)
	}
	var stored model.StoredSetlist
	if err := dynamodbattribute.UnmarshalMap(out.Item, &stored); err != nil {
		return model.Setlist{}, errors.Wrap(err, "could not decode setlist")
	}

	songs, err := d.songsById(ctx, stored.SongIds)
	if err != nil {
		return model.Setlist{}, err
	}
	return catalog.Expand(stored, func(id string) (model.Song, bool) {
		s, ok := songs[id]
		return s, ok
	}), nil
}

func pk(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(id)},
	}
}

func (d *DynamoCatalog) songsById(ctx context.Context, ids []string) (map[string]model.Song, error) {
	res := make(map[string]model.Song)

	seen := make(map[string]bool)
	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			keys = append(keys, pk(id))
		}
	}

	for len(keys) > 0 {
		n := min(len(keys), maxBatchKeys)
		batch := map[string]*dynamodb.KeysAndAttributes{
			d.songsTable: {Keys: keys[:n]},
		}
		keys = keys[n:]

		// unprocessed keys come back and are retried until none are left
		for len(batch) > 0 {
			out, err := d.client.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{RequestItems: batch})
			if err != nil {
				return nil, errors.Wrap(err, "error from DynamoDB getting songs")
			}
			for _, item := range out.Responses[d.songsTable] {
				var s model.Song
				if err := dynamodbattribute.UnmarshalMap(item, &s); err != nil {
					return nil, errors.Wrap(err, "could not decode song")
				}
				res[s.Id] = s
			}
			batch = out.UnprocessedKeys
		}
	}
	return res, nil
}
