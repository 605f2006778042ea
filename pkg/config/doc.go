// Package config loads autobarrel configuration files.
//
// A configuration file is JSON by default; YAML and TOML are picked by file
// extension. Loading validates the raw values, decodes them into a File and
// resolves that into a Config whose patterns are relative to the base
// directory a pass runs in.
package config
