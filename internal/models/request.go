package models

// Request describes one figure to produce. Context carries the method text
// (diagram mode) or the visual intent restated for prompting; RawData is the
// verbatim data payload in plot mode and empty otherwise.
type Request struct {
	Context string
	Intent  string
	Mode    Mode
	RawData string
}
