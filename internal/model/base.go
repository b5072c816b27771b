package model

import (
	"time"

	"github.com/google/uuid"
)

// swagger:model
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func GenerateUUID() string {
	return uuid.New().String()
}
