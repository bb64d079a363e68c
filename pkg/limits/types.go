package limits

// Resource represents a countable tenant resource type.
type Resource string

// Resources gated by plan limits.
const (
	ResourceIngredients Resource = "ingredients"
	ResourceRecipes     Resource = "recipes"
	ResourceMenuItems   Resource = "menu_items"
)

// AllResources returns every gated resource in a stable order.
func AllResources() []Resource {
	return []Resource{ResourceIngredients, ResourceRecipes, ResourceMenuItems}
}

// ResourceUsage contains the current usage, the plan limit and the
// can-add-one-more verdict for a single resource.
type ResourceUsage struct {
	Current int64 `json:"current"`
	Max     int64 `json:"max"`
	CanAdd  bool  `json:"can_add"`
}

// UsageCheck is the result of checking all resource limits for one
// organization. It is computed fresh on every check and never cached.
type UsageCheck struct {
	PlanID        string                     `json:"plan_id"`
	Resources     map[Resource]ResourceUsage `json:"resources"`
	UpgradeNeeded bool                       `json:"upgrade_needed"`
}

// CanAdd reports whether the given resource has headroom according to
// the check this UsageCheck was computed with.
func (c UsageCheck) CanAdd(res Resource) bool {
	return c.Resources[res].CanAdd
}

// Usage returns the per-resource usage entry.
func (c UsageCheck) Usage(res Resource) ResourceUsage {
	return c.Resources[res]
}
