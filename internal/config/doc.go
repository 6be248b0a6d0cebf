// Package config loads terminal settings from every source and keeps the
// effective settings current.
//
// # Architecture
//
// Settings are organized in layers, with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  5. Overrides (arguments)   │  ← Highest priority
//	├─────────────────────────────┤
//	│  4. Environment Variables   │  ← TERMCONF_INITIAL_ROWS=40
//	├─────────────────────────────┤
//	│  3. Project Settings        │
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/termconf/settings.json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority (defaults.json)
//	└─────────────────────────────┘
//
// Each layer is layered onto a fresh settings.GlobalAppSettings in turn.
// A key a layer does not mention keeps the value of the layers below it.
//
// # Sub-packages
//
//   - document: the parsed settings tree every format is read into
//   - convert: typed conversion of document values, with keyed errors
//   - warning: non-fatal problems reported alongside loaded settings
//   - loader: JSON, TOML, YAML and environment variable loading
//   - layer: the priority-ordered layer stack
//   - watcher: file watching for live reload
//   - notify: change notification after a reload
//   - registry: descriptions of every known setting
//
// # Basic Usage
//
//	cfg := config.New(config.WithWatcher(true))
//	if err := cfg.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer cfg.Close()
//
//	s := cfg.Settings()
//	fmt.Println(s.InitialRows, s.Theme)
//
//	cfg.SubscribePath("theme", func(c notify.Change) {
//	    fmt.Println("theme is now", c.NewValue.String())
//	})
//
// # Error Handling
//
// A settings value of the wrong type fails the whole load; the previous
// settings stay in effect. Problems that do not need to stop the load,
// such as a key binding missing an argument, are reported by Warnings.
//
// Files that keep their settings under the deprecated "globals" object
// still load, with a warning. DefaultMigrator rewrites them.
package config
