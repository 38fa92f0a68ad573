package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// loadDocument decodes a JSON or YAML file into plain Go values. Files with
// neither extension are tried as JSON first. Duplicate keys in JSON input are
// logged as warnings; the decoded document holds the last of them.
func loadDocument(path string, log *zap.Logger) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := filepath.Ext(path)
	doc, err := decodeDocument(ext, b)
	if err != nil {
		return nil, err
	}
	if !isYAML(ext) {
		if dups, err := duplicateKeys(b); err == nil && len(dups) > 0 {
			log.Warn("duplicate keys in document", zap.String("file", path), zap.Strings("pointers", dups))
		}
	}
	return doc, nil
}

func isYAML(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decodeDocument(ext string, b []byte) (any, error) {
	var doc any
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &doc); err == nil {
			return doc, nil
		}
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: not JSON or YAML: %w", ext, err)
		}
	}
	return doc, nil
}
