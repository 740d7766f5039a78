package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/chronicler/internal/config"
)

const header = "# Chronicler Configuration Example\n# Copy this file to config.yaml (or config.toml) and customize as needed\n\n"

// render encodes cfg as TOML for .toml targets and YAML otherwise.
func render(cfg *config.Config, target string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(target), ".toml") {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(cfg)
}

func main() {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	outputFile := "config.example.yaml"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	data, err := render(cfg, outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating config: %v\n", err)
		os.Exit(1)
	}
	output := header + string(data)

	if outputFile == "-" {
		fmt.Print(output)
		return
	}

	if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
}
