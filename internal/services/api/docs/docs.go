// Package docs holds the OpenAPI document for the API service
// swagger.json is produced by swag from the handler annotations, regenerate after changing them
package docs

import _ "embed"

//go:generate swag init --v3.1 --parseInternal --parseDependency -g main.go -d ../../../../cmd/hranalytics-api,.. -o . --outputTypes json

// Document is the generated OpenAPI document
//
//go:embed swagger.json
var Document []byte
