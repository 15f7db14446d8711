package common

const (
	// SrcFileExtension is the conventional extension for Wisp source files.
	SrcFileExtension = ".wsp"

	// ConfigFileName is the name of the optional TOML run descriptor (see
	// src/config) that the host CLI looks for next to a source file.
	ConfigFileName = "wisp.toml"

	// WispVersion is the toolchain version reported by `wisp version`.
	WispVersion = "0.1.0"
)
