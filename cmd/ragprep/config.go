package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/rag-prep/internal/prep"
)

// fileConfig mirrors the optional YAML file accepted by --config. Explicit
// flags take precedence over file values.
type fileConfig struct {
	Model         string `yaml:"model"`
	SubjectDomain string `yaml:"subject_domain"`
	MIMEType      string `yaml:"mime_type"`
	Timeout       string `yaml:"timeout"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

func (fc fileConfig) apply(cfg *prep.Config) error {
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.SubjectDomain != "" {
		cfg.SubjectDomain = fc.SubjectDomain
	}
	if fc.MIMEType != "" {
		cfg.MIMEType = fc.MIMEType
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}
