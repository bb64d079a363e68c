// Package organization manages tenant accounts: creation on the free
// plan, plan changes, soft deletion, and the plan resolution used by
// freemium limit enforcement, with an optional Redis-backed plan cache.
package organization
