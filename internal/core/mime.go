package core

import (
	"path/filepath"
	"strings"
)

var contentTypes = map[string]string{
	".go":   "text/x-go; charset=utf-8",
	".txt":  "text/plain; charset=utf-8",
	".html": "text/html; charset=utf-8",
	".json": "application/json",
	".css":  "text/css",
	".js":   "application/javascript",
}

func GetContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
