// Package paths holds the on-disk conventions of tns: platform keys, the
// layout of an app project, the layout of fetched framework packages, and
// the per-user directories resolved through github.com/adrg/xdg.
//
// # Project Layout
//
//	<project>/
//	  .tnsproject                     descriptor, JSON {"id": "..."}
//	  app/                            cross-platform app sources
//	    App_Resources/<DisplayName>/  per-platform native resource overrides
//	  platforms/<key>/                one native project per added platform
//
// # User Directories
//
//	| Purpose | Linux                 | macOS                          |
//	|---------|-----------------------|--------------------------------|
//	| config  | ~/.config/tns         | ~/Library/Application Support  |
//	| profile | ~/.local/share/tns    | ~/Library/Application Support  |
//	| cache   | ~/.cache/tns          | ~/Library/Caches               |
package paths
