// Package coop defines the cooperative-entity records served by the remote
// cooperatives API and the display helpers shared by every renderer.
//
// A Cooperativa always references exactly one CoopSystem, the organizational
// grouping it belongs to. Field names and JSON keys mirror the API payload.
package coop
