package http

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx answer.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RunRequest starts a run. Omitted mode means manual and omitted stages enable all.
type RunRequest struct {
	DeliveryDate openapi_types.Date `json:"delivery_date"`
	DeliveryType string             `json:"delivery_type"`
	Mode         string             `json:"mode,omitempty"`
	StoreTag     string             `json:"store_tag,omitempty"`
	Locations    []string           `json:"locations,omitempty"`
	OrderIDs     []string           `json:"order_ids,omitempty"`
	Stages       string             `json:"stages,omitempty"`
	Format       string             `json:"format,omitempty"`
}

type BatchCounter struct {
	Key          string             `json:"key"`
	Location     string             `json:"location"`
	DeliveryDate openapi_types.Date `json:"delivery_date"`
	DeliveryType string             `json:"delivery_type"`
	Batch        int                `json:"batch"`
	UpdatedAt    string             `json:"updated_at,omitempty"`
}

type RunBatch struct {
	StoreTag     string             `json:"store_tag"`
	Location     string             `json:"location"`
	DeliveryDate openapi_types.Date `json:"delivery_date"`
	DeliveryType string             `json:"delivery_type"`
	Batch        *int               `json:"batch"`
	Orders       int                `json:"orders"`
	Booked       int                `json:"booked"`
}
