// Package ports defines the driven-side interfaces of the tally engine
// (session persistence) together with a reusable contract test that every
// implementation must pass.
package ports
