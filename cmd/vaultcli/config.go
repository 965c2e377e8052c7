package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional on-disk config ($VAULTCLI_CONFIG or
// ./vaultcli.yml) that seeds global flag defaults before cobra parses the
// command line, so operators don't have to repeat --backend/--redis-addr
// on every invocation.
type fileConfig struct {
	Backend     string `yaml:"backend"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisROAddr string `yaml:"redis_ro_addr"`
	VaultID     string `yaml:"vault_id"`
}

func loadFileConfig() (*fileConfig, error) {
	path := os.Getenv("VAULTCLI_CONFIG")
	if path == "" {
		path = "vaultcli.yml"
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &fileConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var c fileConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func applyFileConfig(c *fileConfig) {
	if c.Backend != "" {
		gf.backend = c.Backend
	}
	if c.RedisAddr != "" {
		gf.redisAddr = c.RedisAddr
	}
	if c.RedisROAddr != "" {
		gf.redisROAddr = c.RedisROAddr
	}
	if c.VaultID != "" {
		gf.vaultID = c.VaultID
	}
}
