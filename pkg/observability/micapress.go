// Engine-specific instrumentation helpers.
package observability

import "go.opentelemetry.io/otel/attribute"

// Semantic convention attributes for engine operations.
var (
	AttrTokenType   = attribute.Key("micapress.record.token_type")
	AttrReportID    = attribute.Key("micapress.report.id")
	AttrQuickMode   = attribute.Key("micapress.validate.quick")
	AttrValid       = attribute.Key("micapress.report.valid")
	AttrFactCount   = attribute.Key("micapress.generate.fact_count")
	AttrDocumentLen = attribute.Key("micapress.generate.document_bytes")
)

// ValidationOperation creates attributes for a validation run.
func ValidationOperation(tokenType string, quick bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrTokenType.String(tokenType),
		AttrQuickMode.Bool(quick),
	}
}

// GenerationOperation creates attributes for a document generation run.
func GenerationOperation(tokenType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrTokenType.String(tokenType),
	}
}
