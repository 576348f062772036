// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution lifecycle that loads a
// markup document, mounts its trees and dumps the result, decoupled from any
// specific entrypoint like a CLI.
package app
