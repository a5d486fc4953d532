// Package api serves the IKH visualizer over HTTP: digests,
// step tables, avalanche comparisons and a shared demo chain
// persisted through a chain.Store.
package api
