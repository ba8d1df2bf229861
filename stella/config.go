package stella

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/stellabot/stella-gacha/stella/config"
	"github.com/stellabot/stella-gacha/stella/database"
	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/gacha"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := defaultConfig()
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig         `toml:"log"`
	Server ServerConfig      `toml:"server"`
	DB     database.DBConfig `toml:"db"`
	Gacha  GachaConfig       `toml:"gacha"`
	Battle BattleConfig      `toml:"battle"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GachaConfig is the probability and economy table. Weights are relative
// integers keyed by rarity code ("N", "R", "SR", "UR", "LE").
type GachaConfig struct {
	CostPerPull     int64          `toml:"cost_per_pull"`
	BulkSize        int            `toml:"bulk_size"`
	GuaranteeTier   string         `toml:"guarantee_tier"`
	DailyReward     int64          `toml:"daily_reward"`
	StartingBalance int64          `toml:"starting_balance"`
	Weights         map[string]int `toml:"weights"`
}

// EngineConfig converts the toml probability table into the draw engine's
// typed configuration. Unset fields fall back to the engine defaults.
func (g GachaConfig) EngineConfig() (gacha.Config, error) {
	cfg := gacha.DefaultConfig()
	if g.BulkSize > 0 {
		cfg.BulkSize = g.BulkSize
	}
	if g.GuaranteeTier != "" {
		tier, err := models.ParseRarity(g.GuaranteeTier)
		if err != nil {
			return gacha.Config{}, fmt.Errorf("invalid guarantee tier %q: %w", g.GuaranteeTier, err)
		}
		cfg.GuaranteeTier = tier
	}
	if len(g.Weights) > 0 {
		weights := make(map[models.Rarity]int, len(g.Weights))
		for code, weight := range g.Weights {
			rarity, err := models.ParseRarity(code)
			if err != nil {
				return gacha.Config{}, fmt.Errorf("invalid rarity %q in weights: %w", code, err)
			}
			weights[rarity] = weight
		}
		cfg.Weights = weights
	}
	return cfg, nil
}

type BattleConfig struct {
	MaxTurns int `toml:"max_turns"`
	// Concurrent simulations admitted at once; excess requests queue.
	MaxConcurrent int64 `toml:"max_concurrent"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8000},
		Gacha: GachaConfig{
			CostPerPull:     config.DefaultCostPerPull,
			BulkSize:        config.DefaultBulkPullSize,
			GuaranteeTier:   "SR",
			DailyReward:     config.DefaultDailyReward,
			StartingBalance: config.DefaultStartingBalance,
		},
		Battle: BattleConfig{
			MaxTurns:      config.DefaultMaxTurns,
			MaxConcurrent: 64,
		},
	}
}
