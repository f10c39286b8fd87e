package axon

// CallSiteTable is the finalized output of the graph-building layer: a
// lookup from service identity to its root call-site. The table must be
// complete before a container is built over it; the engines assume a
// cycle-free, fully resolvable graph.
type CallSiteTable struct {
	sites map[ServiceKey]CallSite
}

// NewCallSiteTable creates an empty table.
func NewCallSiteTable() *CallSiteTable {
	return &CallSiteTable{sites: make(map[ServiceKey]CallSite)}
}

// Add records a call-site under its service identity. Adding the same
// identity twice keeps the later call-site, the last-registration-wins
// rule of the registration layer.
func (t *CallSiteTable) Add(site CallSite) {
	t.sites[site.Service()] = site
}

// Lookup returns the root call-site for a service identity.
func (t *CallSiteTable) Lookup(service ServiceKey) (CallSite, bool) {
	site, ok := t.sites[service]
	return site, ok
}

// Len returns the number of registered service identities, for diagnostics.
func (t *CallSiteTable) Len() int {
	return len(t.sites)
}
