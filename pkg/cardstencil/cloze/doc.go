// Package cloze renders cloze deletions embedded in field text.
//
// A deletion is written {{c<ordinal>::<answer>}} or
// {{c<ordinal>::<answer>::<hint>}}. A field may hold several deletions, with
// the same or different ordinals. Rendering addresses one ordinal:
//
//	Question  {{c1::Paris::capital}} -> <span class=cloze>[...(capital)]</span>
//	Context   {{c1::Paris::capital}} -> <span class=cloze>Paris</span>
//	Answer    only the styled answers of the ordinal, joined
//
// Deletions of other ordinals always render as their plain answer.
package cloze
