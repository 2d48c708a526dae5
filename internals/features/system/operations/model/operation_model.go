package model

import "time"

// OperationModel is one audit trail entry for a state-changing request.
type OperationModel struct {
	ID        string    `bson:"_id" json:"id"`
	Method    string    `bson:"method" json:"method"`
	Path      string    `bson:"path" json:"path"`
	Status    int       `bson:"status" json:"status"`
	UserID    string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	IP        string    `bson:"ip" json:"ip"`
	RequestID string    `bson:"request_id,omitempty" json:"request_id,omitempty"`
	LatencyMs int64     `bson:"latency_ms" json:"latency_ms"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
