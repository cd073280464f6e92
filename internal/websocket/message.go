package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/google/uuid"
)

type MessageType string

const (
	// Server to Client
	MessageTypeBannerCreated    MessageType = "BANNER_CREATED"
	MessageTypeBannerUpdated    MessageType = "BANNER_UPDATED"
	MessageTypeCountdownTick    MessageType = "COUNTDOWN_TICK"
	MessageTypeCountdownExpired MessageType = "COUNTDOWN_EXPIRED"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

type BannerPayload struct {
	Banner *domain.Banner `json:"banner"`
}

type CountdownTickPayload struct {
	BannerID  uuid.UUID `json:"bannerId"`
	Remaining int       `json:"remaining"`
}

type CountdownExpiredPayload struct {
	BannerID uuid.UUID `json:"bannerId"`
}
