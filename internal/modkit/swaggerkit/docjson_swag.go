//go:build swag

package swaggerkit

import docs "hranalytics/internal/services/api/docs"

// docReader goes through the swag registry, tests swap it for broken documents
var docReader = func() []byte { return []byte(docs.SwaggerInfo.ReadDoc()) }
