// Package config loads process configuration: defaults, then an optional
// YAML file, then command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"heaptree/infra/kafka"
	"heaptree/jobs/broadcaster"
	"heaptree/service"
)

type Config struct {
	Server      Server             `yaml:"server"`
	Tree        service.Config     `yaml:"tree"`
	Outbox      Outbox             `yaml:"outbox"`
	Kafka       kafka.Config       `yaml:"kafka"`
	Broadcaster broadcaster.Config `yaml:"broadcaster"`
	Log         Log                `yaml:"log"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Outbox struct {
	// Dir empty disables recording drained values.
	Dir string `yaml:"dir"`
}

type Log struct {
	Level       string `yaml:"level"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{Addr: ":50051"},
		Kafka: kafka.Config{
			Topic:        "heaptree.sorted",
			Driver:       kafka.DriverKafkaGo,
			BatchTimeout: 10 * time.Millisecond,
		},
		Broadcaster: broadcaster.Config{
			Interval:   2 * time.Second,
			MaxRetries: 5,
		},
		Log: Log{Level: "INFO", ServiceName: "heaptree"},
	}
}

// LoadFile overlays a YAML file onto cfg.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from defaults, the file named by -config (if any)
// and the remaining flags in args. extra registers command specific flags
// on the same set before parsing.
func Load(name string, args []string, extra ...func(*flag.FlagSet)) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	for _, f := range extra {
		f(fs)
	}
	path := fs.String("config", "", "YAML config file")
	addr := fs.String("addr", "", "gRPC listen address")
	outboxDir := fs.String("outbox", "", "outbox directory; empty disables it")
	brokers := fs.String("brokers", "", "comma separated Kafka brokers")
	topic := fs.String("topic", "", "Kafka topic for drained values")
	driver := fs.String("driver", "", "Kafka client: kafka-go or sarama")
	nodeLimit := fs.Int("node-limit", -1, "maximum live tree nodes, 0 for no limit")
	level := fs.String("log-level", "", "log level")
	trace := fs.Bool("trace", false, "log every sift step")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *path != "" {
		if err := LoadFile(&cfg, *path); err != nil {
			return cfg, err
		}
	}

	// flags win over the file
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *outboxDir != "" {
		cfg.Outbox.Dir = *outboxDir
	}
	if *brokers != "" {
		cfg.Kafka.Brokers = strings.Split(*brokers, ",")
	}
	if *topic != "" {
		cfg.Kafka.Topic = *topic
	}
	if *driver != "" {
		cfg.Kafka.Driver = *driver
	}
	if *nodeLimit >= 0 {
		cfg.Tree.NodeLimit = *nodeLimit
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	if *trace {
		cfg.Tree.Trace = true
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Tree.NodeLimit < 0 {
		errs = append(errs, errors.New("tree.node_limit must be >= 0"))
	}
	if c.Kafka.Enabled() {
		if c.Kafka.Topic == "" {
			errs = append(errs, errors.New("kafka.topic is required with brokers"))
		}
		if c.Outbox.Dir == "" {
			errs = append(errs, errors.New("outbox.dir is required with brokers"))
		}
		switch c.Kafka.Driver {
		case "", kafka.DriverKafkaGo, kafka.DriverSarama:
		default:
			errs = append(errs, fmt.Errorf("kafka.driver %q unknown", c.Kafka.Driver))
		}
	}
	return errors.Join(errs...)
}
