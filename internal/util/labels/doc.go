// Package labels provides consistent labeling for Hetzner Cloud resources.
//
// All labels use the opsretry.io domain prefix and are built with a builder
// carrying the account name and manager identification.
package labels
