package dto

import "time"

type UnlockRequest struct {
	Pin string `json:"pin"`
}

type UnlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
