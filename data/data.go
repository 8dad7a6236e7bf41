// Package data embeds the catalog of predefined applications.
package data

import _ "embed"

// AppsYAML is the default application catalog.
//
//go:embed apps.yaml
var AppsYAML []byte
