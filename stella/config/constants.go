package config

import "time"

// Application-wide constants organized by domain

// Game Mechanics Constants
const (
	// Pull economy
	DefaultCostPerPull     = 100
	DefaultBulkPullSize    = 10
	DefaultDailyReward     = 1000
	DefaultStartingBalance = 1000

	// Battle system
	DefaultMaxTurns    = 20
	FieldAttackBonus   = 10
	MinDamagePerStrike = 1
)

// Sell values by rarity code, matching the live economy.
var SellValues = map[string]int64{
	"N":  10,
	"R":  50,
	"SR": 300,
	"UR": 1000,
	"LE": 5000,
}

// Database and Performance Constants
const (
	DefaultTxTimeout = 10 * time.Second
	ShutdownTimeout  = 10 * time.Second

	// Cache settings
	CacheSize = 10000
)
