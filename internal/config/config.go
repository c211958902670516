package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Listen   string   `koanf:"listen"`
	Frontend Frontend `koanf:"frontend"`
	Auth     Auth     `koanf:"auth"`
	Bridge   Bridge   `koanf:"bridge"`
	Database Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Auth struct {
	// TokenSecret signs session tokens. Must be overridden outside dev.
	TokenSecret string `koanf:"tokensecret"`
	// TokenTTLHours is the session token lifetime.
	TokenTTLHours int `koanf:"tokenttlhours"`
}

type Bridge struct {
	// SimulatedLatencyMs is the delay the simulated pairer waits between
	// lifecycle steps (connecting -> pairing code -> connected).
	SimulatedLatencyMs int `koanf:"simulatedlatencyms"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host:   "http://localhost:3000",
		Listen: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Auth: Auth{
			TokenSecret:   "opsdesk-dev-secret",
			TokenTTLHours: 72,
		},
		Bridge: Bridge{
			SimulatedLatencyMs: 1500,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "opsdesk",
			Pass:   "",
			Name:   "opsdesk",
			Schema: "opsdesk",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider("OPSDESK_", ".", func(k string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "OPSDESK_")), "_", ".")
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
