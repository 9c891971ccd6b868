package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goombaio/namegenerator"
	"github.com/peterh/liner"
)

func main() {
	if err := repl(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func repl() error {
	name := namegenerator.NewNameGenerator(time.Now().UTC().UnixNano()).Generate()

	cfg, cfgErr := LoadConfig(ConfigPath())
	logger := NewLogger(os.Stderr, name, cfg.Debug)
	if cfgErr != nil {
		logger.Printf("load config: %v, using defaults", cfgErr)
	}

	var source LineSource
	if cfg.LineEditing && liner.TerminalSupported() {
		source = NewTerminalSource(cfg, logger)
	} else {
		source = NewReaderSource(os.Stdin, os.Stdout)
	}

	session, err := NewSession(name, cfg, SQLParser{}, source, os.Stdout, logger)
	if err != nil {
		if cerr := source.Close(); cerr != nil {
			logger.Printf("close line source: %v", cerr)
		}
		return err
	}
	return session.Run()
}
