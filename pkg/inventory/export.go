package inventory

import (
	"sort"
)

// ExportList renders the inventory in the dynamic-inventory `--list`
// shape: a _meta.hostvars section, one entry per group, and a top
// level "all" group whose children cover every root group plus
// "ungrouped".
func (i *Inventory) ExportList() map[string]interface{} {
	hostvars := make(map[string]interface{}, len(i.hosts))
	for host, vars := range i.hosts {
		hostvars[host] = vars
	}

	out := map[string]interface{}{
		"_meta": map[string]interface{}{
			"hostvars": hostvars,
		},
	}

	childGroups := map[string]struct{}{}
	for _, grp := range i.groups {
		for _, child := range grp.children {
			childGroups[child] = struct{}{}
		}
	}

	groupNames := make([]string, 0, len(i.groups))
	for name := range i.groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	allChildren := []string{"ungrouped"}

	for _, name := range groupNames {
		grp := i.groups[name]

		entry := map[string]interface{}{}
		if len(grp.hosts) > 0 {
			entry["hosts"] = append([]string{}, grp.hosts...)
		}
		if len(grp.children) > 0 {
			entry["children"] = append([]string{}, grp.children...)
		}

		out[name] = entry

		if _, isChild := childGroups[name]; !isChild {
			allChildren = append(allChildren, name)
		}
	}

	out["all"] = map[string]interface{}{
		"children": allChildren,
	}

	out["ungrouped"] = map[string]interface{}{
		"hosts": i.ungroupedHosts(),
	}

	return out
}

// ExportHost renders a single host for the `--host` shape. Unknown
// hosts yield an empty mapping, mirroring how dynamic inventories
// answer for hosts they do not manage.
func (i *Inventory) ExportHost(host string) map[string]interface{} {
	vars, ok := i.HostVars(host)
	if !ok {
		return map[string]interface{}{}
	}

	return vars
}

func (i *Inventory) ungroupedHosts() []string {
	grouped := map[string]struct{}{}
	for _, grp := range i.groups {
		for _, host := range grp.hosts {
			grouped[host] = struct{}{}
		}
	}

	ungrouped := []string{}
	for _, host := range i.hostOrder {
		if _, ok := grouped[host]; !ok {
			ungrouped = append(ungrouped, host)
		}
	}

	return ungrouped
}
