package config

import "time"

const AppName = "hop"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "hop.log"

// ConfigEnv overrides the default config file location.
const ConfigEnv = "HOP_CONFIG"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultHighlighter = "builtin"
const DefaultHistoryLimit = 0 // unlimited
