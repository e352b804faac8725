// Package app contains the core application logic of the kitbag CLI. It
// defines the App struct, its configuration, and the command dispatch,
// decoupled from any specific entrypoint.
package app
