package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

// SlotPartition is the partition key shared by every slot entity.
const SlotPartition = "taskflow"

type slotEntity struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	Value        string `json:"Value"`
}

type tableSlotRepository struct {
	client *aztables.Client
}

// NewTableSlotRepository stores each slot as one Azure Table entity.
func NewTableSlotRepository(client *aztables.Client) SlotRepository {
	return &tableSlotRepository{client: client}
}

// EnsureTable creates the slot table unless it already exists.
func EnsureTable(ctx context.Context, client *aztables.Client) error {
	_, err := client.CreateTable(ctx, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if !(errors.As(err, &respErr) && respErr.ErrorCode == string(aztables.TableAlreadyExists)) {
			return err
		}
	}
	return nil
}

func (r *tableSlotRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := r.client.GetEntity(ctx, SlotPartition, key, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	value, err := decodeSlotEntity(resp.Value)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *tableSlotRepository) Save(ctx context.Context, key string, value []byte) error {
	data, err := encodeSlotEntity(key, value)
	if err != nil {
		return err
	}
	_, err = r.client.UpsertEntity(ctx, data, &aztables.UpsertEntityOptions{
		UpdateMode: aztables.UpdateModeReplace,
	})
	return err
}

func encodeSlotEntity(key string, value []byte) ([]byte, error) {
	return json.Marshal(slotEntity{
		PartitionKey: SlotPartition,
		RowKey:       key,
		Value:        string(value),
	})
}

func decodeSlotEntity(data []byte) ([]byte, error) {
	var ent slotEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return nil, err
	}
	return []byte(ent.Value), nil
}
