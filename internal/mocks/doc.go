// Package mocks provides hand-written mock implementations of the
// application's interfaces for use in tests. Each mock exposes optional
// function fields; when a field is nil the mock falls back to simple
// default values carried on the struct.
package mocks
