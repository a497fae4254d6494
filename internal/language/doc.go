// Package language canonicalizes language tags and applies the source/target
// selection policies used by the subtitle pipeline.
//
// Normalize collapses arbitrary BCP-47 style tags (zh-Hant-TW, en-GB, ja_JP)
// into comparable primary forms. The normalized form is the sole basis for the
// "is translation needed" check and for auto target selection.
package language
