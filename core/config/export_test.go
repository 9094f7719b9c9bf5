package config

// ResetCache drops cached values so tests can observe environment changes.
var ResetCache = resetCache
