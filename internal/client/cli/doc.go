// Package cli provides the interactive MaterialHub command-line client.
//
// It wires configuration, the local state database, the REST API client,
// and an interactive REPL over the catalog, profile, upload, and payment
// stores. Typical flow: restore the persisted session, verify it against
// the server, and execute user commands.
//
// Key features:
//   - Register / Login / Logout (session persisted locally)
//   - Browse, search, and filter the material catalog
//   - Favorite and download materials
//   - Upload files with a live progress bar, single or queued
//   - View and edit the profile, change the password
//   - Purchase a membership via the payment flow
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
