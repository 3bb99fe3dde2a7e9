package model

// ManagerConfig is the process-wide engine configuration. It is written once
// by the administrative init operation and read-only afterwards; changing it
// requires an explicit re-init, which the engine rejects.
type ManagerConfig struct {
	// Fee rates in basis points (1/100 of a percent) applied to the pot
	ClientFeeBps   uint16
	PlatformFeeBps uint16

	// PlatformAccount receives the platform's fee cut on completion
	PlatformAccount AccountID

	// Denomination names the value unit all balances are held in
	Denomination string
}
