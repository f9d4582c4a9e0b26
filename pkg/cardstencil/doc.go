// Package cardstencil renders flashcard templates.
//
// Templates use a Mustache-like grammar over note fields, extended with cloze
// deletions: a field such as "{{c1::Paris::capital}} is in {{c2::France}}"
// carries maskable answers addressed by ordinal.
//
// # Quick Start
//
//	data := cardstencil.FieldMap{
//	    "Text": "{{c1::Paris::capital}} is in {{c2::France}}",
//	}
//
//	front, err := cardstencil.Render("{{cq:1:Text}}", data)
//	// <span class=cloze>[...(capital)]</span> is in France
//
//	back, err := cardstencil.Render("{{cactx:1:Text}}", data)
//	// <span class=cloze>Paris</span> is in France
//
// # Template Syntax
//
// Sections:
//
//	{{#Field}}...{{/Field}}      - body if Field is truthy; repeated per item for
//	                               sequences; rendered against a mapping
//	{{^Field}}...{{/Field}}      - body if Field is falsy or absent
//	{{#cq:1:Text}}...{{/cq:1:Text}} - body if cloze 1 exists in Text
//
// Tags:
//
//	{{Field}}           - field value, or {unknown field Field}
//	{{{Field}}}         - value without its outer <span> wrapper
//	{{text:Field}}      - value with markup stripped
//	{{cq:1:Text}}       - cloze 1 masked
//	{{ca:1:Text}}       - answers of cloze 1
//	{{cactx:1:Text}}    - cloze 1 revealed in context
//	{{! comment }}      - nothing
//	{{=<% %>=}}         - switch delimiters for the rest of the render
//
// # Rendering Model
//
// A render expands all sections first and then all tags. Both passes find
// the leftmost match, replace every copy of it, and search again from the
// start. Section bodies rendered against a nested context run the same two
// passes recursively in the same session, so a delimiter switch inside a
// section body stays in effect afterwards.
//
// # Error Handling
//
//   - Missing fields render as "{unknown field NAME}".
//   - A malformed delimiter tag turns the whole output into
//     InvalidTemplateOutput ("{{invalid template}}"); in strict mode the
//     *SyntaxError is returned as well.
//   - Tags with a recognized sigil that has no modifier ({{#x}} left over
//     without a closing tag, {{&x}}, {{>x}}) fail with *UnsupportedSigilError.
//   - Exceeding Config.MaxPasses or Config.MaxRenderDepth fails with *LimitError.
//
// # Thread Safety
//
// An Engine is safe for concurrent use. Each Render call owns its session.
package cardstencil
