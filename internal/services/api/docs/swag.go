//go:build swag

package docs

import "github.com/swaggo/swag/v2"

// SwaggerInfo is the registered swag instance
var SwaggerInfo = &swag.Spec{
	Version:          "",
	BasePath:         "/api/v1",
	Title:            "HR Assistant Analytics API",
	Description:      "Read only analytics over logged HR assistant queries",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(Document),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
