package ixbrl

import (
	"html"
	"sort"
	"strings"

	"github.com/regberg-labs/micapress/pkg/facts"
	"github.com/regberg-labs/micapress/pkg/taxonomy"
	"github.com/regberg-labs/micapress/pkg/whitepaper"
)

// Namespace URIs fixed by the inline-XBRL target format. Taxonomy
// namespaces come from the catalog and are declared alongside these on
// the root element.
const (
	nsXHTML   = "http://www.w3.org/1999/xhtml"
	nsIX      = "http://www.xbrl.org/2013/inlineXBRL"
	nsIXT     = "http://www.xbrl.org/inlineXBRL/transformation/2022-02-16"
	nsXBRLI   = "http://www.xbrl.org/2003/instance"
	nsXBRLDI  = "http://xbrl.org/2006/xbrldi"
	nsLink    = "http://www.xbrl.org/2003/linkbase"
	nsXLink   = "http://www.w3.org/1999/xlink"
	nsISO4217 = "http://www.xbrl.org/2003/iso4217"

	// leiScheme is the entity identifier scheme declared in contexts.
	leiScheme = "http://standards.iso.org/iso/17442"
)

// Token-type dimension carried in the scenario of both contexts. The
// scenario mechanism is used for dimensional qualification, never
// segment.
const typeAxis = "mica:TypeOfCryptoAssetAxis"

func memberFor(tt whitepaper.TokenType) string {
	switch tt {
	case whitepaper.TokenTypeOther:
		return "mica:OtherCryptoAssetMember"
	case whitepaper.TokenTypeART:
		return "mica:AssetReferencedTokenMember"
	case whitepaper.TokenTypeEMT:
		return "mica:EMoneyTokenMember"
	}
	return ""
}

// documentCSS is embedded in the head. The generated document is fully
// self-contained and never references external stylesheets or scripts.
const documentCSS = `body{font-family:Georgia,"Times New Roman",serif;margin:0;padding:0;color:#1a1a1a;background:#fff}
.wp-document{max-width:52rem;margin:0 auto;padding:2rem}
.wp-document h1{font-size:1.6rem;border-bottom:2px solid #1a1a1a;padding-bottom:.5rem}
.wp-section{margin:1.5rem 0}
.wp-section h2{font-size:1.15rem;border-bottom:1px solid #999;padding-bottom:.25rem}
.wp-fact{margin:.4rem 0;line-height:1.5}
.wp-label{font-weight:700;margin-right:.5rem}
.wp-value{white-space:pre-wrap}`

// Document carries everything needed to assemble one complete inline
// white paper. The engine fills the period fields from the record before
// building, so they are plain YYYY-MM-DD strings here.
type Document struct {
	Title       string
	Language    string // xml:lang on the root element, defaults to "en"
	TokenType   whitepaper.TokenType
	EntityLEI   string // context entity identifier under the ISO 17442 scheme
	InstantDate string
	PeriodStart string
	PeriodEnd   string
	Facts       []facts.Fact
	Units       []facts.Unit
}

// DocumentBuilder assembles documents against one taxonomy index.
type DocumentBuilder struct {
	index  *taxonomy.Index
	tagger *Tagger
}

// NewDocumentBuilder returns a builder rendering facts with the given
// tagger. A nil tagger selects one with the default continuation
// threshold.
func NewDocumentBuilder(ix *taxonomy.Index, tagger *Tagger) *DocumentBuilder {
	if tagger == nil {
		tagger = NewTagger(0)
	}
	return &DocumentBuilder{index: ix, tagger: tagger}
}

// Build assembles the complete document: XML declaration, root element
// declaring every namespace exactly once, metadata head with inline CSS,
// a hidden inline-XBRL header holding exactly one instant and one
// duration context plus the referenced units, and the tagged facts
// grouped by taxonomy section in the body.
func (b *DocumentBuilder) Build(doc Document) string {
	title := doc.Title
	if title == "" {
		title = "Crypto-Asset White Paper"
	}
	lang := doc.Language
	if lang == "" {
		lang = "en"
	}

	var w strings.Builder
	w.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	w.WriteString(`<html xmlns="` + nsXHTML + `"`)
	w.WriteString("\n  " + `xmlns:ix="` + nsIX + `"`)
	w.WriteString("\n  " + `xmlns:ixt="` + nsIXT + `"`)
	w.WriteString("\n  " + `xmlns:xbrli="` + nsXBRLI + `"`)
	w.WriteString("\n  " + `xmlns:xbrldi="` + nsXBRLDI + `"`)
	w.WriteString("\n  " + `xmlns:link="` + nsLink + `"`)
	w.WriteString("\n  " + `xmlns:xlink="` + nsXLink + `"`)
	w.WriteString("\n  " + `xmlns:iso4217="` + nsISO4217 + `"`)
	for _, prefix := range sortedPrefixes(b.index.Namespaces()) {
		w.WriteString("\n  xmlns:" + prefix + `="` + b.index.Namespaces()[prefix] + `"`)
	}
	w.WriteString("\n  " + `xml:lang="` + html.EscapeString(lang) + `">` + "\n")

	w.WriteString("<head>\n")
	w.WriteString(`<meta http-equiv="Content-Type" content="text/html; charset=UTF-8"/>` + "\n")
	w.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	w.WriteString(`<style type="text/css">` + "\n" + documentCSS + "\n</style>\n")
	w.WriteString("</head>\n")

	w.WriteString("<body>\n")
	b.writeHeader(&w, doc)
	b.writeBody(&w, doc, title)
	w.WriteString("</body>\n</html>\n")
	return w.String()
}

// writeHeader emits the hidden ix:header block with the schema
// reference, both contexts, and the units the fact list references.
func (b *DocumentBuilder) writeHeader(w *strings.Builder, doc Document) {
	w.WriteString(`<div style="display:none">` + "\n<ix:header>\n")

	w.WriteString("<ix:references>\n")
	w.WriteString(`<link:schemaRef xlink:type="simple" xlink:href="` + b.index.EntryPoint() + `"/>` + "\n")
	w.WriteString("</ix:references>\n")

	w.WriteString("<ix:resources>\n")
	scenario := scenarioXML(doc.TokenType)

	w.WriteString(`<xbrli:context id="` + facts.ContextInstant + `">`)
	w.WriteString(entityXML(doc.EntityLEI))
	w.WriteString("<xbrli:period><xbrli:instant>" + doc.InstantDate + "</xbrli:instant></xbrli:period>")
	w.WriteString(scenario)
	w.WriteString("</xbrli:context>\n")

	w.WriteString(`<xbrli:context id="` + facts.ContextDuration + `">`)
	w.WriteString(entityXML(doc.EntityLEI))
	w.WriteString("<xbrli:period><xbrli:startDate>" + doc.PeriodStart +
		"</xbrli:startDate><xbrli:endDate>" + doc.PeriodEnd + "</xbrli:endDate></xbrli:period>")
	w.WriteString(scenario)
	w.WriteString("</xbrli:context>\n")

	for _, u := range doc.Units {
		w.WriteString(`<xbrli:unit id="` + u.ID + `"><xbrli:measure>` + u.Measure + "</xbrli:measure></xbrli:unit>\n")
	}

	w.WriteString("</ix:resources>\n</ix:header>\n</div>\n")
}

// writeBody emits the visible content: one div per taxonomy section that
// has facts, each fact rendered behind its catalog label. Facts whose
// element the index does not know render unlabeled at the end rather
// than being dropped.
func (b *DocumentBuilder) writeBody(w *strings.Builder, doc Document, title string) {
	bySection := make(map[whitepaper.Section][]string)
	var stray []string

	for _, f := range doc.Facts {
		el, ok := b.index.ByName(f.Element)
		if !ok {
			stray = append(stray, b.factXML(f.Element, b.tagger.RenderFact(f)))
			continue
		}
		bySection[el.Section] = append(bySection[el.Section], b.factXML(el.Label, b.tagger.RenderFact(f)))
	}

	w.WriteString(`<div class="wp-document">` + "\n")
	w.WriteString("<h1>" + html.EscapeString(title) + "</h1>\n")

	for _, section := range whitepaper.SectionOrder() {
		rendered := bySection[section]
		if len(rendered) == 0 {
			continue
		}
		w.WriteString(`<div class="wp-section">` + "\n")
		w.WriteString("<h2>" + html.EscapeString(section.Title()) + "</h2>\n")
		for _, markup := range rendered {
			w.WriteString(markup)
		}
		w.WriteString("</div>\n")
	}

	for _, markup := range stray {
		w.WriteString(markup)
	}

	w.WriteString("</div>\n")
}

func (b *DocumentBuilder) factXML(label, rendered string) string {
	return `<div class="wp-fact"><span class="wp-label">` + html.EscapeString(label) +
		`</span><span class="wp-value">` + rendered + "</span></div>\n"
}

func entityXML(lei string) string {
	return `<xbrli:entity><xbrli:identifier scheme="` + leiScheme + `">` +
		html.EscapeString(lei) + "</xbrli:identifier></xbrli:entity>"
}

// scenarioXML qualifies both contexts with the token-type dimension.
// Unknown token types carry no scenario at all.
func scenarioXML(tt whitepaper.TokenType) string {
	member := memberFor(tt)
	if member == "" {
		return ""
	}
	return `<xbrli:scenario><xbrldi:explicitMember dimension="` + typeAxis + `">` +
		member + "</xbrldi:explicitMember></xbrli:scenario>"
}

func sortedPrefixes(namespaces map[string]string) []string {
	prefixes := make([]string, 0, len(namespaces))
	for prefix := range namespaces {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}
