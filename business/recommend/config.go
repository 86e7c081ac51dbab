package recommend

import "time"

type Config struct {
	Trainer      TrainerConfig
	DefaultLimit int
	MaxLimit     int

	// retrain after this many accepted feedback events; 0 disables
	RetrainEvery int
	// periodic retrain, run by RunRetrainLoop; 0 disables
	RetrainInterval time.Duration
}

const (
	defaultLimit = 10
	defaultMax   = 100
)

func DefaultConfig() Config {
	return Config{
		Trainer:      DefaultTrainerConfig(),
		DefaultLimit: defaultLimit,
		MaxLimit:     defaultMax,
	}
}
