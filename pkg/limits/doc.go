// Package limits implements freemium limit checking and enforcement for
// tenant resources.
//
// A Service combines three collaborators: a Source loading the plan
// catalog, a PlanResolver mapping an organization to its plan ID, and a
// CounterRegistry of per-resource usage counters. CheckAll produces a
// point-in-time UsageCheck; Enforce gates create operations and reports
// violations as *LimitExceededError carrying the counts for upgrade
// prompts.
//
// Resolution degrades gracefully: a missing organization or an unknown
// plan value falls back to the free tier rather than erroring, so
// enforcement can never take down unrelated flows.
package limits
