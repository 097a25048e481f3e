package models

// MConfig Structure
type MConfig struct {
	Name      string        `yaml:"name"`
	Host      string        `yaml:"host"`
	WSPort    int           `yaml:"ws_port"`
	HTTPPort  int           `yaml:"http_port"`
	LogLevel  string        `yaml:"log_level"`
	Broadcast MBroadcast    `yaml:"broadcast"`
	Market    MMarketConfig `yaml:"market"`
}

type MBroadcast struct {
	UpdateIntervalSeconds int `yaml:"update_interval_seconds"`
	InitialDelaySeconds   int `yaml:"initial_delay_seconds"`
}

type MMarketConfig struct {
	Symbol string `yaml:"symbol"`
}
