// Package queue defines message payloads exchanged over the message broker.
package queue

// ProductionRecordedEvent is published when a daily production record is
// created or replaced. It carries enough information for downstream
// consumers to log or trigger analytics without querying the primary
// database.
type ProductionRecordedEvent struct {
	ProductionID  uint64 `json:"production_id"`
	FlockID       uint64 `json:"flock_id"`
	RecordDate    string `json:"record_date"`
	EggsCollected uint32 `json:"eggs_collected"`
	ChicksHatched uint32 `json:"chicks_hatched"`
	Deaths        uint32 `json:"deaths"`
	RecordedByID  uint64 `json:"recorded_by_id"`
	RecordedBy    string `json:"recorded_by"`
	RecordedAt    string `json:"recorded_at"`
}
