package config

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	// Let the OS pick a free port so test runs don't collide.
	cfg.ServerPort = 0
}
