package models

// Lifecycle: geri dönüşüm kutusu durumu
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleTrashed Lifecycle = "trashed"
	// LifecyclePurging is only ever set inside the transaction that deletes the row.
	LifecyclePurging Lifecycle = "purging"
)
