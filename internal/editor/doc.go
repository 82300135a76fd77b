// Package editor orchestrates an image editing session.
//
// A Session owns the loaded original, the current working buffer and the
// Config. Changing the configuration or loading an image schedules the
// adjustment pipeline through a Debouncer, so a burst of slider changes
// produces a single run. Filters and equalization are applied on demand to
// the current buffer. Reset returns to the original image and the default
// configuration.
//
// Defaults and the debounce window can be overridden with a YAML settings
// file, see LoadSettings.
package editor
